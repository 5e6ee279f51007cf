package nli

// NumClasses is the size of the model's output distribution.
const NumClasses = 3

// Label is a relationship class name.
type Label string

const (
	Entailment    Label = "Entailment"
	Neutral       Label = "Neutral"
	Contradiction Label = "Contradiction"
)

// labels maps model output index to class label. The order is fixed by the
// model's training label scheme (0=entailment, 1=neutral, 2=contradiction)
// and must never be reordered.
var labels = [NumClasses]Label{Entailment, Neutral, Contradiction}

// LabelForIndex returns the class label for a model output index.
// It panics on an out-of-range index; callers only index with argmax results.
func LabelForIndex(i int) Label { return labels[i] }

// Pair is an ordered premise/hypothesis input. Empty strings are valid.
type Pair struct {
	Premise    string
	Hypothesis string
}

// Result is the outcome of classifying one pair. Derived per request, never
// stored.
type Result struct {
	// Prediction is the argmax class.
	Prediction Label
	// Confidence is the probability mass of the predicted class.
	Confidence float64
	// Probs is the full distribution, indexed by class
	// (0=entailment, 1=neutral, 2=contradiction). Each value is in [0,1]
	// and the three sum to 1 up to floating-point tolerance.
	Probs [NumClasses]float64
}

// BatchItem pairs one input with its outcome. Err is set when this pair
// failed; the surrounding batch is unaffected.
type BatchItem struct {
	Pair   Pair
	Result Result
	Err    error
}

// State represents the engine lifecycle state.
type State string

const (
	StateReady State = "ready"
	StateError State = "error"
)
