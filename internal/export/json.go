package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/cglsim/internal/storage"
)

type SummaryData struct {
	ID            string             `json:"id"`
	N             int                `json:"n"`
	Alpha         float64            `json:"alpha"`
	Beta          float64            `json:"beta"`
	Dt            float64            `json:"dt"`
	Duration      float64            `json:"duration"`
	Steps         int                `json:"steps"`
	Times         []float64          `json:"times"`
	MeanIntensity []float64          `json:"mean_intensity"`
	MaxAmplitude  []float64          `json:"max_amplitude"`
	ProbeRe       []float64          `json:"probe_re"`
	ProbeIm       []float64          `json:"probe_im"`
	Metrics       map[string]float64 `json:"metrics"`
}

func summaryData(meta *storage.RunMetadata, sum *storage.Summary) SummaryData {
	return SummaryData{
		ID:            meta.ID,
		N:             meta.N,
		Alpha:         meta.Alpha,
		Beta:          meta.Beta,
		Dt:            meta.Dt,
		Duration:      meta.Duration,
		Steps:         len(sum.Times),
		Times:         sum.Times,
		MeanIntensity: sum.MeanIntensity,
		MaxAmplitude:  sum.MaxAmplitude,
		ProbeRe:       sum.ProbeRe,
		ProbeIm:       sum.ProbeIm,
		Metrics:       meta.Metrics,
	}
}

func WriteJSON(w io.Writer, meta *storage.RunMetadata, sum *storage.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(summaryData(meta, sum))
}

func ExportJSON(path string, meta *storage.RunMetadata, sum *storage.Summary) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, meta, sum)
}
