package modinspect

import (
	"fmt"
	"strings"
	"text/tabwriter"
)

// FormatLiveModules renders live module records as an aligned table in the
// shape lsmod users expect:
//
//	Module      Size     Used by            State
//	ext4        1015808  1 -                Live
//	ip_tables   36864    2 iptable_nat,...  Live
func FormatLiveModules(records []LiveModule) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "Module\tSize\tUsed by\tState")
	for _, rec := range records {
		deps := "-"
		if len(rec.Dependents) > 0 {
			deps = strings.Join(rec.Dependents, ",")
		}
		fmt.Fprintf(w, "%s\t%d\t%d %s\t%s\n", rec.Name, rec.Size, rec.Refs, deps, rec.State)
	}

	w.Flush()
	return b.String()
}
