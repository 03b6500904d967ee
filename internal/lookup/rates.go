package lookup

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileRateSource serves exchange rates from a YAML map of currency code to
// units-per-USD. It is the non-interactive rate collaborator used by the
// listener, where nobody is around to answer a prompt.
type FileRateSource struct {
	rates map[string]float64
}

func LoadRates(path string) (*FileRateSource, error) {
	blob, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &FileRateSource{rates: map[string]float64{}}, nil
	}
	if err != nil {
		return nil, err
	}

	rates := map[string]float64{}
	if err := yaml.Unmarshal(blob, &rates); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	upper := make(map[string]float64, len(rates))
	for code, rate := range rates {
		upper[strings.ToUpper(code)] = rate
	}
	return &FileRateSource{rates: upper}, nil
}

func (s *FileRateSource) Rate(currency string) (float64, bool) {
	rate, ok := s.rates[strings.ToUpper(currency)]
	if !ok || rate <= 0 {
		return 0, false
	}
	return rate, true
}
