package validation

import (
	"fmt"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	if format != constants.OutputFormatPretty && format != constants.OutputFormatCSV {
		return fmt.Errorf("expected output format of %s or %s, got %s",
			constants.OutputFormatPretty, constants.OutputFormatCSV, format)
	}
	return nil
}

// ValidateRateStore checks the rate store kind.
func ValidateRateStore(kind string) error {
	if kind != constants.RateStoreMemory && kind != constants.RateStoreRedis {
		return fmt.Errorf("expected interestRate.store of %s or %s, got %s",
			constants.RateStoreMemory, constants.RateStoreRedis, kind)
	}
	return nil
}
