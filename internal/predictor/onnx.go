package predictor

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/rs/zerolog"
	ort "github.com/yalue/onnxruntime_go"

	"finover/internal/model"
)

var ortInit sync.Once

func initORT() error {
	var err error
	ortInit.Do(func() {
		libPath := "/usr/lib/libonnxruntime.so"
		if runtime.GOOS == "windows" {
			libPath = "onnxruntime.dll"
		} else if runtime.GOOS == "darwin" {
			libPath = "libonnxruntime.dylib"
		}
		if v := os.Getenv("ONNXRUNTIME_LIB"); v != "" {
			libPath = v
		}
		ort.SetSharedLibraryPath(libPath)
		err = ort.InitializeEnvironment()
	})
	return err
}

// featureCount is the model input width: rsi, sma, volatility, beta.
const featureCount = 4

// ONNXRegistry loads and caches one ONNX risk model per symbol from a
// models directory. Artifacts are named <symbol>_risk_model.onnx and
// take a (1,4) float32 feature row, producing a (1,1) risk score.
type ONNXRegistry struct {
	dir    string
	log    zerolog.Logger
	mu     sync.Mutex
	models map[string]*onnxModel
}

type onnxModel struct {
	session *ort.AdvancedSession
	input   *ort.Tensor[float32]
	output  *ort.Tensor[float32]
}

// NewONNXRegistry creates a registry over the given models directory.
// Models are loaded lazily on first prediction for a symbol.
func NewONNXRegistry(dir string, log zerolog.Logger) *ONNXRegistry {
	return &ONNXRegistry{dir: dir, log: log, models: make(map[string]*onnxModel)}
}

// Predict runs the symbol's model over one complete feature row.
func (r *ONNXRegistry) Predict(symbol string, row model.FeatureRow) (float64, error) {
	if !row.Complete() {
		return 0, fmt.Errorf("%w: incomplete feature row for %s", ErrPrediction, symbol)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	m, err := r.load(symbol)
	if err != nil {
		return 0, err
	}

	data := m.input.GetData()
	data[0] = float32(row.RSI)
	data[1] = float32(row.SMA)
	data[2] = float32(row.Volatility)
	data[3] = float32(row.Beta)

	if err := m.session.Run(); err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrPrediction, symbol, err)
	}
	return float64(m.output.GetData()[0]), nil
}

// load returns the cached model for symbol, loading it from disk on
// first use. Callers hold r.mu.
func (r *ONNXRegistry) load(symbol string) (*onnxModel, error) {
	if m, ok := r.models[symbol]; ok {
		return m, nil
	}

	path := filepath.Join(r.dir, symbol+"_risk_model.onnx")
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s (%s)", ErrModelNotFound, symbol, path)
	}
	if err := initORT(); err != nil {
		return nil, fmt.Errorf("%w: initialize onnxruntime: %v", ErrPrediction, err)
	}

	input, err := ort.NewTensor(ort.NewShape(1, featureCount), make([]float32, featureCount))
	if err != nil {
		return nil, fmt.Errorf("%w: create input tensor: %v", ErrPrediction, err)
	}
	output, err := ort.NewEmptyTensor[float32](ort.NewShape(1, 1))
	if err != nil {
		input.Destroy()
		return nil, fmt.Errorf("%w: create output tensor: %v", ErrPrediction, err)
	}
	session, err := ort.NewAdvancedSession(path,
		[]string{"input"}, []string{"output"},
		[]ort.Value{input}, []ort.Value{output}, nil)
	if err != nil {
		input.Destroy()
		output.Destroy()
		return nil, fmt.Errorf("%w: create session for %s: %v", ErrPrediction, symbol, err)
	}

	m := &onnxModel{session: session, input: input, output: output}
	r.models[symbol] = m
	r.log.Info().Str("symbol", symbol).Str("path", path).Msg("risk model loaded")
	return m, nil
}

// Close destroys all loaded sessions.
func (r *ONNXRegistry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for symbol, m := range r.models {
		m.session.Destroy()
		m.input.Destroy()
		m.output.Destroy()
		delete(r.models, symbol)
	}
}
