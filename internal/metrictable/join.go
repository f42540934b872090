package metrictable

import "go.uber.org/zap"

// Merge reconciles the utilization and invocation tables into one.
//
// When both sides are empty it returns an empty table carrying the union
// schema and logs a warning. When exactly one side is empty the other is
// returned unchanged: joining against an empty-but-schema'd table would
// either drop every row or pad each row with an all-null counterpart, and
// "the other collector legitimately found nothing" is not a reason to do
// either. When both sides have rows it performs an outer join on
// (timestamp, endpoint): the merged key set is the union of both key sets,
// and a key present on only one side keeps the other side's columns absent.
func Merge(util, inv *Table, log *zap.Logger) *Table {
	switch {
	case util.Empty() && inv.Empty():
		log.Warn("no utilization or invocation metrics found")
		return New(append(util.MetricColumns(), inv.MetricColumns()...))
	case util.Empty():
		log.Warn("no utilization metrics found, returning only invocation metrics")
		return inv
	case inv.Empty():
		log.Warn("no invocation metrics found, returning only utilization metrics")
		return util
	}

	merged := New(append(util.MetricColumns(), inv.MetricColumns()...))
	for _, side := range []*Table{util, inv} {
		for _, k := range side.Keys() {
			for m, v := range side.Row(k) {
				merged.Set(k.Timestamp, k.EndpointName, m, v)
			}
		}
	}
	return merged
}
