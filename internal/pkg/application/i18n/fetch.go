package i18n

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/diwise/wikibase-dcatap/internal/pkg/domain"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("wikibase-dcatap/i18n")

// Fetch retrieves the catalog level translation document. Locations starting
// with http:// or https:// are requested over the network, anything else is
// read as a local file.
func Fetch(ctx context.Context, location string) ([]byte, error) {
	var err error
	ctx, span := tracer.Start(ctx, "fetch-catalog-i18n")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logging.GetFromContext(ctx), ctx)

	var body []byte

	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		body, err = fetchURL(ctx, location)
	} else {
		body, err = os.ReadFile(location)
		if err != nil {
			err = &domain.DataError{Source: location, Err: err}
		}
	}

	if err != nil {
		return nil, err
	}

	log.Debug().Msgf("fetched %d bytes of catalog translations from %s", len(body), location)

	return body, nil
}

func fetchURL(ctx context.Context, url string) ([]byte, error) {
	httpClient := http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &domain.DataError{Source: url, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Add("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, &domain.DataError{Source: url, Err: fmt.Errorf("failed to send request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.DataError{Source: url, Err: fmt.Errorf("request failed with status code %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.DataError{Source: url, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	return body, nil
}
