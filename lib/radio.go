package lib

import "math"

// ComputeLink fills in a link's radio budget (spec.md 4.3): RSL, SNR,
// the per-MCS capacity table and the ZeroCapacity flag. fromProfile
// and toProfile are the transmitting/receiving sectors' hardware
// profiles; toMCS is the receiving device's MCS table. txPowerDBm is
// the transmitter's configured output power.
func ComputeLink(l *Link, fromProfile, toProfile SectorProfile, toMCS MCSTable, txPowerDBm float64, p RadioParams) {
	gTx := fromProfile.BoresightGainDBi - fromProfile.AntennaPattern.LossAt(l.DeviationFromDeg)
	gRx := toProfile.BoresightGainDBi - toProfile.AntennaPattern.LossAt(l.DeviationToDeg)

	fspl := FreeSpacePathLossDB(l.DistanceM, p.FrequencyGHz)
	gal := GaseousLossDB(l.DistanceM, p)
	rain := RainLossDB(l.DistanceM, p)

	rsl := txPowerDBm - fromProfile.MiscLossDB + gTx - (fspl + gal + rain) + gRx - toProfile.MiscLossDB
	l.RSLDBm = rsl
	l.SNRDb = rsl - p.ThermalNoiseDBm - p.NoiseFigureDB

	rows := toMCS.FeasibleRows(l.SNRDb)
	if len(rows) == 0 {
		l.ZeroCapacity = true
		l.Capacity = MCSCapacity{}
		return
	}
	l.Capacity = MCSCapacity{Rows: rows}
	l.ZeroCapacity = false
}

// MaxLinkDistance inverts the RSL->MCS relationship with a
// minimum-MCS configuration to bound the search radius for candidate
// link generation (spec.md 4.3: "Maximum link length for access/
// backhaul is derived by inverting RSL->MCS with a minimum-MCS
// configuration"). It bisects on distance since FSPL/GAL/rain grow
// monotonically with it.
func MaxLinkDistance(fromProfile, toProfile SectorProfile, minSNRDb, txPowerDBm float64, p RadioParams, maxSearchM float64) float64 {
	feasible := func(d float64) bool {
		fspl := FreeSpacePathLossDB(d, p.FrequencyGHz)
		gal := GaseousLossDB(d, p)
		rain := RainLossDB(d, p)
		rsl := txPowerDBm - fromProfile.MiscLossDB + fromProfile.BoresightGainDBi -
			(fspl + gal + rain) + toProfile.BoresightGainDBi - toProfile.MiscLossDB
		snr := rsl - p.ThermalNoiseDBm - p.NoiseFigureDB
		return snr >= minSNRDb
	}
	lo, hi := 1.0, maxSearchM
	if !feasible(lo) {
		return 0
	}
	if feasible(hi) {
		return hi
	}
	for i := 0; i < 64 && hi-lo > 0.1; i++ {
		mid := (lo + hi) / 2
		if feasible(mid) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}

// dbmToMw converts a power level in dBm to milliwatts.
func dbmToMw(dbm float64) float64 { return math.Pow(10, dbm/10) }

// dbToLinear converts a power ratio in dB to a linear ratio.
func dbToLinear(db float64) float64 { return math.Pow(10, db/10) }

// InterferenceQuery is the set of lookups ComputeInterference needs
// from the candidate graph, kept as plain function values so this
// file has no dependency on CandidateGraph's internals (spec.md 4.3
// criteria reference LOS and sector-pointing facts the graph builder
// already has on hand).
type InterferenceQuery struct {
	HasLOS         func(k, j SiteID) bool
	SectorTowards  func(from, to SiteID) (SectorID, bool)
	SiteOf         func(id SiteID) (*Site, bool)
	ProfileOf      func(sector SectorID) (SectorProfile, bool)
	DeviationAngle func(site SiteID, sector SectorID, toward SiteID) float64
	DistanceM      func(a, b SiteID) float64
}

// ComputeInterference builds the pairwise worst-case interference
// matrix of spec.md 4.3: for every ordered pair of active links (i,j)
// and (k,l), the interference term (k,l)->(i,j) is non-zero only when
//
//   - site k has LOS to site j,
//   - the sector at j receiving link (i,j) is the same sector j would
//     receive on, from k, and
//   - the sector at k transmitting link (k,l) is the sector k uses to
//     point at j.
//
// Power is evaluated at the txPowerDBm argument, the same Tx power
// ComputeLink uses (the profiles' TxPowerMaxDBm is not read), using the same FSPL/GAL/rain budget as ComputeLink but without the
// noise terms, since interference is a received power, not an SNR.
func ComputeInterference(links []*Link, txPowerDBm float64, p RadioParams, q InterferenceQuery) []InterferenceTerm {
	var out []InterferenceTerm
	for _, ij := range links {
		for _, kl := range links {
			if ij.ID == kl.ID {
				continue
			}
			if !q.HasLOS(kl.From, ij.To) {
				continue
			}
			rxAtJ, ok := q.SectorTowards(ij.To, kl.From)
			if !ok || rxAtJ != ij.ToSector {
				continue
			}
			txAtK, ok := q.SectorTowards(kl.From, ij.To)
			if !ok || txAtK != kl.FromSector {
				continue
			}

			txProfile, ok1 := q.ProfileOf(kl.FromSector)
			rxProfile, ok2 := q.ProfileOf(ij.ToSector)
			if !ok1 || !ok2 {
				continue
			}
			dist := q.DistanceM(kl.From, ij.To)
			devTx := q.DeviationAngle(kl.From, kl.FromSector, ij.To)
			devRx := q.DeviationAngle(ij.To, ij.ToSector, kl.From)

			gTx := txProfile.BoresightGainDBi - txProfile.AntennaPattern.LossAt(devTx)
			gRx := rxProfile.BoresightGainDBi - rxProfile.AntennaPattern.LossAt(devRx)
			fspl := FreeSpacePathLossDB(dist, p.FrequencyGHz)
			gal := GaseousLossDB(dist, p)
			rain := RainLossDB(dist, p)

			powerDBm := txPowerDBm - txProfile.MiscLossDB + gTx - (fspl + gal + rain) + gRx - rxProfile.MiscLossDB
			out = append(out, InterferenceTerm{From: kl.ID, To: ij.ID, PowerMw: dbmToMw(powerDBm)})
		}
	}
	return out
}
