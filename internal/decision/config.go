package decision

// Country identifies the country of issue of a personal code, derived from
// its first digit.
type Country string

const (
	CountryEstonia   Country = "EE"
	CountryLatvia    Country = "LV"
	CountryLithuania Country = "LT"
)

// Config holds the decision constants. It is immutable after startup and
// shared by reference across concurrent evaluations; the engine never
// mutates it.
type Config struct {
	MinLoanAmount int
	MaxLoanAmount int

	// Loan periods are in months.
	MinLoanPeriod int
	MaxLoanPeriod int

	Segment1Modifier int
	Segment2Modifier int
	Segment3Modifier int

	ScoreThreshold float64

	MinAge         int
	LifeExpectancy map[Country]int
}

// DefaultConfig returns the production decision constants.
func DefaultConfig() Config {
	return Config{
		MinLoanAmount:    2000,
		MaxLoanAmount:    10000,
		MinLoanPeriod:    12,
		MaxLoanPeriod:    48,
		Segment1Modifier: 100,
		Segment2Modifier: 300,
		Segment3Modifier: 1000,
		ScoreThreshold:   0.1,
		MinAge:           18,
		LifeExpectancy: map[Country]int{
			CountryEstonia:   84,
			CountryLatvia:    82,
			CountryLithuania: 86,
		},
	}
}

// lifeExpectancy returns the configured life expectancy for country, falling
// back to Estonia for countries without an entry.
func (c Config) lifeExpectancy(country Country) int {
	if years, ok := c.LifeExpectancy[country]; ok {
		return years
	}
	return c.LifeExpectancy[CountryEstonia]
}
