package cli

const checkinTemplate = `
=== Check-in Details ===

ID:        {{.ID}}
Local ID:  {{.LocalID}}
Order:     {{.OrderID}}
Shipper:   {{.ShipperID}}
Position:  {{printf "%.6f, %.6f" .Latitude .Longitude}} (±{{printf "%.0f" .Accuracy}} m, {{.Source}})
{{- if .Altitude }}
Altitude:  {{printf "%.1f" (deref .Altitude)}} m
{{- end}}
Captured:  {{capturedAt .CapturedAt}}
Received:  {{.CreatedAt.Format "2006-01-02 15:04:05"}}
{{- if .AddressLabel }}
Address:   {{.AddressLabel}}
{{- end}}
{{- if .Notes }}
Notes:     {{.Notes}}
{{- end}}
Photos:    {{len .PhotoIDs}}
{{- range .PhotoIDs }}
  - {{.}}
{{- end}}
`
