package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

type Group string

const (
	UniversityTown    Group = "university town"
	NonUniversityTown Group = "non-university town"
)

// DefaultAlpha is the significance level of the hypothesis test.
const DefaultAlpha = 0.01

type HypothesisOptions struct {
	Alpha    float64
	EqualVar bool
}

func DefaultHypothesisOptions() HypothesisOptions {
	return HypothesisOptions{Alpha: DefaultAlpha, EqualVar: true}
}

type GroupSummary struct {
	Group     Group
	Regions   int
	Ratios    int
	MeanRatio float64
}

// Result of comparing the price ratios of university and non-university
// towns. Better is the group with the lower mean ratio, i.e. the smaller
// relative price decline.
type Result struct {
	Different     bool
	PValue        float64
	Better        Group
	T             float64
	DF            float64
	Alpha         float64
	Recession     Recession
	University    GroupSummary
	NonUniversity GroupSummary
}

// PriceRatios computes price(quarter before the recession start) /
// price(recession bottom) for every region. Regions missing either price
// or giving a non-finite ratio are left out.
func PriceRatios(t *PriceTable, r Recession) map[RegionKey]float64 {
	before := r.Start.Prev()
	ratios := make(map[RegionKey]float64)

	for _, region := range t.Regions {
		p0, ok := region.Prices[before]
		if !ok {
			continue
		}
		p1, ok := region.Prices[r.Bottom]
		if !ok {
			continue
		}
		ratio := p0 / p1
		if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
			continue
		}
		ratios[region.Key] = ratio
	}
	return ratios
}

type Partition struct {
	University    []RegionKey
	NonUniversity []RegionKey
}

// PartitionRegions splits the regions of the price table into university
// and non-university towns. Every region lands in exactly one group.
func PartitionRegions(t *PriceTable, towns map[RegionKey]bool) Partition {
	var p Partition
	for _, r := range t.Regions {
		if towns[r.Key] {
			p.University = append(p.University, r.Key)
		} else {
			p.NonUniversity = append(p.NonUniversity, r.Key)
		}
	}
	return p
}

// RunHypothesis tests whether university towns' price ratios differ from
// those of other towns.
func RunHypothesis(t *PriceTable, towns []RegionKey, r Recession, opts HypothesisOptions) (*Result, error) {
	ratios := PriceRatios(t, r)
	p := PartitionRegions(t, TownSet(towns))

	sample := func(keys []RegionKey) []float64 {
		var out []float64
		for _, k := range keys {
			if v, ok := ratios[k]; ok {
				out = append(out, v)
			}
		}
		return out
	}
	uni := sample(p.University)
	non := sample(p.NonUniversity)

	tt, err := TTest(uni, non, opts.EqualVar)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Different: tt.PValue < opts.Alpha,
		PValue:    tt.PValue,
		Better:    NonUniversityTown,
		T:         tt.T,
		DF:        tt.DF,
		Alpha:     opts.Alpha,
		Recession: r,
		University: GroupSummary{
			Group:     UniversityTown,
			Regions:   len(p.University),
			Ratios:    len(uni),
			MeanRatio: stat.Mean(uni, nil),
		},
		NonUniversity: GroupSummary{
			Group:     NonUniversityTown,
			Regions:   len(p.NonUniversity),
			Ratios:    len(non),
			MeanRatio: stat.Mean(non, nil),
		},
	}
	if res.University.MeanRatio < res.NonUniversity.MeanRatio {
		res.Better = UniversityTown
	}
	return res, nil
}
