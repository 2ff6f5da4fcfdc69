package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/pkordes/travel-agency/internal/domain"
)

// clientTripsCSVHeaders are the column names written as the first row of a
// client's enrollment export.
var clientTripsCSVHeaders = []string{
	"trip_id", "name", "date_from", "date_to", "registered_at", "payment_date",
}

// wantsCSV reports whether the caller asked for ?format=csv.
func wantsCSV(r *http.Request) bool {
	return r.URL.Query().Get("format") == "csv"
}

// writeClientTripsCSV encodes the client's enrollments as CSV.
// payment_date is an empty cell when unpaid.
func writeClientTripsCSV(w http.ResponseWriter, clientID int, trips []domain.ClientTrip) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	cw.Write(clientTripsCSVHeaders)
	for _, ct := range trips {
		//nolint:errcheck
		cw.Write(clientTripToCSVRecord(ct))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="client-`+strconv.Itoa(clientID)+`-trips.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func clientTripToCSVRecord(ct domain.ClientTrip) []string {
	payment := ""
	if ct.PaymentDate != nil {
		payment = strconv.Itoa(int(*ct.PaymentDate))
	}
	return []string{
		strconv.Itoa(ct.TripID),
		ct.Name,
		ct.DateFrom.Format("2006-01-02"),
		ct.DateTo.Format("2006-01-02"),
		strconv.Itoa(int(ct.RegisteredAt)),
		payment,
	}
}
