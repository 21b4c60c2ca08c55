// Package analysis provides spectral and field diagnostics for completed
// runs: temporal power spectra of probe series, 2D spatial spectra of
// individual frames, and scalar field extraction (real part, amplitude,
// phase) for rendering.
package analysis
