package reckon

// An AnalyzerSpec describes a single dataset-wide statistic to compute over a
// stream of Batches. AnalyzerSpec is a closed variant: only *UniquesSpec and
// *CombineSpec satisfy it, and dispatch over the two is exhaustive. A spec
// and its inputs exist for exactly one analyzer execution; outputs outlive
// the execution.
type AnalyzerSpec interface {
	isAnalyzerSpec()
}

// A UniquesSpec requests a ranked vocabulary of the distinct Elements in the
// input, with their occurrence counts. Construct with CreateUniquesSpec,
// which leaves TopK and FrequencyThreshold unset.
type UniquesSpec struct {
	// TopK, when non-negative, retains only the TopK entries with the
	// largest counts. Negative means no limit.
	TopK int
	// FrequencyThreshold, when non-negative, discards entries whose count is
	// below it. Negative means no threshold.
	FrequencyThreshold float64
	// StoreFrequency selects the "<count> <element>" artifact line format
	// over the bare "<element>" format
	StoreFrequency bool
	// OutputName names the artifact passed to the ArtifactWriter
	OutputName string
}

// CreateUniquesSpec is a factory for UniquesSpecs, with TopK and
// FrequencyThreshold unset
func CreateUniquesSpec(outputName string) *UniquesSpec {
	return &UniquesSpec{
		TopK:               -1,
		FrequencyThreshold: -1,
		OutputName:         outputName,
	}
}

func (s *UniquesSpec) isAnalyzerSpec() {}

// A CombineSpec requests a generic accumulator-based reduction over the
// input, driven by the supplied Combiner
type CombineSpec struct {
	Combiner Combiner
}

func (s *CombineSpec) isAnalyzerSpec() {}
