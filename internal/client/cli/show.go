package cli

import (
	"context"
	"fmt"
	"text/template"
	"time"
)

var checkinTmpl = template.Must(template.New("checkin").Funcs(template.FuncMap{
	"deref": func(v *float64) float64 { return *v },
	"capturedAt": func(ms int64) string {
		return time.UnixMilli(ms).Format(time.DateTime)
	},
}).Parse(checkinTemplate))

func (c *Cli) runShow(ctx context.Context, args []string) error {
	id, err := singleArg(args, "show <id>")
	if err != nil {
		return err
	}

	authData, client, err := c.session(ctx)
	if err != nil {
		return err
	}

	resp, err := c.markerService(authData, client).Detail(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get check-in: %w", err)
	}

	if err := checkinTmpl.Execute(c.io, resp); err != nil {
		return fmt.Errorf("failed to render check-in: %w", err)
	}
	return nil
}
