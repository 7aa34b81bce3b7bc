package catalog

import (
	"errors"
	"fmt"
	"slices"
)

// ErrUnknownRegion is returned for a mass region outside MassRegions.
var ErrUnknownRegion = errors.New("unknown mass region")

// MassRegions lists the invariant-mass regions the histograms are
// partitioned in, in plotting order.
var MassRegions = []string{"LOWMM", "RESOM", "HIGHM", "SIDEB", "FULLM", "EXTMM", "ZPEAK", "LARGE", "HIGGS"}

// CheckRegion validates a mass region name.
func CheckRegion(region string) error {
	if !slices.Contains(MassRegions, region) {
		return fmt.Errorf("%w: %q", ErrUnknownRegion, region)
	}
	return nil
}

// DataSample is the sample name of the recorded data in the key convention.
const DataSample = "data"

// HistKey builds the storage key <distribution>_<region>_<sample>.
func HistKey(dist, region, sample string) string {
	return dist + "_" + region + "_" + sample
}
