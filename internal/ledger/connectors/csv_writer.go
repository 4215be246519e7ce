package connectors

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/ledgerflow/payments-engine/internal/ledger/domain"
)

// WriteSnapshots writes one CSV row per snapshot to w, in the order given,
// using the documented client,available,held,total,locked header.
func WriteSnapshots(w io.Writer, snapshots []domain.Snapshot) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"client", "available", "held", "total", "locked"}); err != nil {
		return err
	}
	for _, s := range snapshots {
		row := []string{
			strconv.FormatUint(uint64(s.ClientID), 10),
			s.Available.StringFixed(4),
			s.Held.StringFixed(4),
			s.Total.StringFixed(4),
			strconv.FormatBool(s.Locked),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	return writer.Error()
}
