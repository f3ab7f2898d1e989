package cli

import "io"

const usageText = `GeoCheckin Client

Usage:
  geocheckin [OPTIONS] COMMAND [ARGS]

Options:
  --version            Show version information
  --server URL         Server URL used by login (default: http://localhost:8080)
  --db PATH            Path to local database (default: geocheckin-client.db)
  --token TOKEN        Shipper token (not recommended, use env var or file)
  --token-file PATH    Path to file containing the shipper token
  --log-level LEVEL    debug, info, warn or error (default: warn)

Token Priority (highest to lowest):
  1. GEOCHECKIN_TOKEN environment variable
  2. --token-file (file path)
  3. --token (command line)
  4. Interactive prompt (fallback)

Commands:
  login                 Verify the token with the server and save the session
  logout                Forget the saved session (queued check-ins are kept)
  status                Show session, queue counts and last sync
  checkin [FLAGS]       Capture a proof-of-delivery check-in
      --order N         Order number (required)
      --photo FILE      Photo, repeat up to 5 times (at least one)
      --lat/--lng       Manual position when GPS and photo metadata are missing
      --accuracy M      Accuracy of the manual position in meters
      --gps-feed FILE   JSON lines GPS fixes from an external logger
      --target LAT,LNG  Delivery point for the geofence check
      --notes TEXT      Delivery note (up to 500 characters)
      --address TEXT    Delivery address label
      --offline         Queue without trying to submit
  queue                 List queued check-ins
  sync                  Send queued check-ins now
  retry <local-id>      Move a failed check-in back to pending
  remove <local-id>     Drop a queued check-in
  markers [FLAGS]       List check-ins inside a map area
      --bbox MIN_LNG,MIN_LAT,MAX_LNG,MAX_LAT
      --from/--to       RFC3339 or YYYY-MM-DD
      --zoom Z          Cluster nearby check-ins below zoom 14
      --watch D         Redraw every D until interrupted
  show <id>             Show a stored check-in
  history [FLAGS]       Page through submitted check-ins, newest first
      --page N          Page number (default 1)
      --limit N         Check-ins per page (default 20)
  agent [FLAGS]         Sync the queue in the background until interrupted
      --interval D      Sync interval while online (default 30s)
      --probe D         Health probe interval (default 15s)

Examples:
  export GEOCHECKIN_TOKEN='eyJhbGciOi...'
  geocheckin --server https://checkin.example.com login
  geocheckin checkin --order A-1042 --photo door.jpg
  geocheckin checkin --order A-1043 --photo door.jpg --lat 10.8231 --lng 106.6297 --accuracy 30
  geocheckin queue
  geocheckin markers --bbox 106.6,10.7,106.8,10.9 --zoom 12
  geocheckin history --page 2
`

// PrintUsage writes the command reference to w.
func PrintUsage(w io.Writer) {
	_, _ = io.WriteString(w, usageText)
}
