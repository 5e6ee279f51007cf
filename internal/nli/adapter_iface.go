package nli

import "context"

// Classifier abstracts the model runtime used by the Engine: tokenizer +
// classifier weights + device binding, created once and immutable thereafter.
// Implementations must be safe for concurrent use by multiple requests.
type Classifier interface {
	// Scores encodes the pair jointly (truncating to the configured maximum
	// combined length) and runs a forward pass, returning the three raw
	// model scores in label-scheme order. It must not retain request state
	// across calls.
	Scores(ctx context.Context, premise, hypothesis string) ([NumClasses]float32, error)
	// Device reports the compute device the weights are bound to
	// ("cuda" or "cpu").
	Device() string
	// Close releases native resources. The classifier is unusable afterwards.
	Close() error
}

// ClassifierConfig captures backend construction parameters.
// Input/output names follow the usual transformer export convention.
type ClassifierConfig struct {
	// ModelPath is the ONNX graph file (merged weights).
	ModelPath string
	// TokenizerPath is the HuggingFace tokenizer.json.
	TokenizerPath string
	// MaxSeqLen bounds the combined encoded pair length. Longer input is
	// truncated, never rejected.
	MaxSeqLen int
	// InputIDsName, AttentionMaskName and OutputName identify graph tensors.
	InputIDsName      string
	AttentionMaskName string
	OutputName        string
	// Device selects the execution provider: "auto" prefers an accelerator
	// and falls back to the CPU, "cuda" and "cpu" force one.
	Device string
	// LibraryPath optionally points at the onnxruntime shared library.
	LibraryPath string
}

// Defaults applied when corresponding ClassifierConfig fields are unset.
const (
	DefaultMaxSeqLen         = 256
	defaultInputIDsName      = "input_ids"
	defaultAttentionMaskName = "attention_mask"
	defaultOutputName        = "logits"
)

// withDefaults fills unset fields so backends see a complete config.
func (c ClassifierConfig) withDefaults() ClassifierConfig {
	if c.MaxSeqLen <= 0 {
		c.MaxSeqLen = DefaultMaxSeqLen
	}
	if c.InputIDsName == "" {
		c.InputIDsName = defaultInputIDsName
	}
	if c.AttentionMaskName == "" {
		c.AttentionMaskName = defaultAttentionMaskName
	}
	if c.OutputName == "" {
		c.OutputName = defaultOutputName
	}
	if c.Device == "" {
		c.Device = "auto"
	}
	return c
}
