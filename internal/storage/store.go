package storage

import (
	"encoding/csv"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/cglsim/internal/cgl"
	"github.com/san-kum/cglsim/internal/metrics"
)

// Store keeps one directory per run under baseDir: metadata.json with the
// run parameters, summary.csv with per-step scalar series, and frames.gob
// with the full complex time history.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Timestamp  time.Time          `json:"timestamp"`
	N          int                `json:"n"`
	Alpha      float64            `json:"alpha"`
	Beta       float64            `json:"beta"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Dx         float64            `json:"dx"`
	Seed       int64              `json:"seed"`
	Integrator string             `json:"integrator"`
	Frames     int                `json:"frames"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Summary is the per-step scalar view of a run, cheap enough to plot and
// analyze without decoding the full frame history.
type Summary struct {
	Times         []float64
	MeanIntensity []float64
	MaxAmplitude  []float64
	ProbeRe       []float64
	ProbeIm       []float64
}

type frameFile struct {
	N      int
	Times  []float64
	Frames [][]complex128
}

func (s *Store) Save(meta RunMetadata, result *cgl.Result) (string, error) {
	runID := fmt.Sprintf("cgl_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.Frames = len(result.Fields)
	meta.Metrics = result.Metrics

	if err := s.writeMetadata(runDir, meta); err != nil {
		return "", err
	}
	if err := s.writeSummary(runDir, result); err != nil {
		return "", err
	}
	if err := s.writeFrames(runDir, result); err != nil {
		return "", err
	}

	return runID, nil
}

func (s *Store) writeMetadata(runDir string, meta RunMetadata) error {
	file, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func (s *Store) writeSummary(runDir string, result *cgl.Result) error {
	file, err := os.Create(filepath.Join(runDir, "summary.csv"))
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	header := []string{"time", "mean_intensity", "max_amplitude", "probe_re", "probe_im"}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, f := range result.Fields {
		n := f.Size()
		probe := f.At(n/2, n/2)
		row := []string{
			strconv.FormatFloat(result.Times[i], 'f', 6, 64),
			strconv.FormatFloat(metrics.FrameIntensity(f), 'g', 10, 64),
			strconv.FormatFloat(metrics.FrameMaxAmplitude(f), 'g', 10, 64),
			strconv.FormatFloat(real(probe), 'g', 10, 64),
			strconv.FormatFloat(imag(probe), 'g', 10, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func (s *Store) writeFrames(runDir string, result *cgl.Result) error {
	file, err := os.Create(filepath.Join(runDir, "frames.gob"))
	if err != nil {
		return err
	}
	defer file.Close()

	ff := frameFile{Times: result.Times, Frames: make([][]complex128, len(result.Fields))}
	if len(result.Fields) > 0 {
		ff.N = result.Fields[0].Size()
	}
	for i, f := range result.Fields {
		ff.Frames[i] = f.Data()
	}

	return gob.NewEncoder(file).Encode(ff)
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadSummary(runID string) (*Summary, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "summary.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return &Summary{}, nil
	}

	sum := &Summary{}
	for _, record := range records[1:] {
		if len(record) < 5 {
			continue
		}
		vals := make([]float64, 5)
		ok := true
		for i := 0; i < 5; i++ {
			v, err := strconv.ParseFloat(record[i], 64)
			if err != nil {
				ok = false
				break
			}
			vals[i] = v
		}
		if !ok {
			continue
		}
		sum.Times = append(sum.Times, vals[0])
		sum.MeanIntensity = append(sum.MeanIntensity, vals[1])
		sum.MaxAmplitude = append(sum.MaxAmplitude, vals[2])
		sum.ProbeRe = append(sum.ProbeRe, vals[3])
		sum.ProbeIm = append(sum.ProbeIm, vals[4])
	}

	return sum, nil
}

// LoadFrames decodes the full complex time history of a run.
func (s *Store) LoadFrames(runID string) ([]cgl.Field, []float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "frames.gob"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	var ff frameFile
	if err := gob.NewDecoder(file).Decode(&ff); err != nil {
		return nil, nil, err
	}

	fields := make([]cgl.Field, len(ff.Frames))
	for i, data := range ff.Frames {
		f := cgl.NewField(ff.N)
		copy(f.Data(), data)
		fields[i] = f
	}

	return fields, ff.Times, nil
}
