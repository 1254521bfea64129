package stats

// Skewness reduces a sample to its bias-corrected skewness.
type Skewness struct{}

// Name is "Skewness".
func (Skewness) Name() string { return "Skewness" }

// ReduceDouble is the double precision skewness of sample.
func (Skewness) ReduceDouble(sample []float64) float64 { return skewness(sample) }

// ReduceFloat is the single precision skewness of sample.
func (Skewness) ReduceFloat(sample []float32) float32 { return skewness(sample) }

// Kurtosis reduces a sample to its bias-corrected excess kurtosis.
type Kurtosis struct{}

func (Kurtosis) Name() string                          { return "Kurtosis" }
func (Kurtosis) ReduceDouble(sample []float64) float64 { return kurtosis(sample) }
func (Kurtosis) ReduceFloat(sample []float32) float32  { return kurtosis(sample) }

// Mean reduces a sample to its arithmetic mean.
type Mean struct{}

func (Mean) Name() string                          { return "Mean" }
func (Mean) ReduceDouble(sample []float64) float64 { return mean(sample) }
func (Mean) ReduceFloat(sample []float32) float32  { return mean(sample) }

// Variance reduces a sample to its bias-corrected variance.
type Variance struct{}

func (Variance) Name() string                          { return "Variance" }
func (Variance) ReduceDouble(sample []float64) float64 { return variance(sample) }
func (Variance) ReduceFloat(sample []float32) float32  { return variance(sample) }

// StdDev reduces a sample to its standard deviation, the square root of
// the bias-corrected variance.
type StdDev struct{}

func (StdDev) Name() string                          { return "StandardDeviation" }
func (StdDev) ReduceDouble(sample []float64) float64 { return sqrt(variance(sample)) }
func (StdDev) ReduceFloat(sample []float32) float32  { return sqrt(variance(sample)) }

// Median reduces a sample to its median.
type Median struct{}

func (Median) Name() string                          { return "Median" }
func (Median) ReduceDouble(sample []float64) float64 { return median(sample) }
func (Median) ReduceFloat(sample []float32) float32  { return median(sample) }
