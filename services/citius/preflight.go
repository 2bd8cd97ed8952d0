package citius

import (
	"context"
	"fmt"
	"time"

	"citius-scraper/lib/restyutil"

	"github.com/go-resty/resty/v2"
)

var preflightClient = resty.New().SetTimeout(10 * time.Second)

func SetRestyInstrumentOutput(out restyutil.InstrumentOutput) {
	preflightClient = resty.New().SetTimeout(10 * time.Second)
	restyutil.InstrumentClient(preflightClient, tracer, out)
}

// Preflight checks that the portal answers over plain HTTP before a
// browser is ever launched, so an unreachable network is reported as
// such instead of masquerading as page drift.
func Preflight(ctx context.Context) error {
	return preflight(ctx, SearchUrl)
}

func preflight(ctx context.Context, url string) error {
	res, err := preflightClient.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return fmt.Errorf("portal unreachable: %w", err)
	}
	if res.StatusCode() >= 500 {
		return fmt.Errorf("portal answered with status %d", res.StatusCode())
	}
	return nil
}
