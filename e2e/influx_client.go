// Package e2e runs the prediction pipeline against real infrastructure
// started with testcontainers-go.
package e2e

import (
	"context"
	"fmt"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
)

// InfluxClient is a small helper around the official InfluxDB v2 client
// used to read back what the influx sink wrote.
type InfluxClient struct {
	bucket string
	client influxdb2.Client
	query  api.QueryAPI
}

// NewInfluxClient creates a new client for the given parameters. It assumes
// the server is already running and reachable.
func NewInfluxClient(url, org, bucket, token string) *InfluxClient {
	c := influxdb2.NewClient(url, token)
	return &InfluxClient{
		bucket: bucket,
		client: c,
		query:  c.QueryAPI(org),
	}
}

// PredictionFields returns the fields of every flight_prediction point in
// the bucket, keyed by field name.
func (c *InfluxClient) PredictionFields(ctx context.Context) (map[string]any, error) {
	flux := fmt.Sprintf(`from(bucket:"%s")
  |> range(start: 2000-01-01T00:00:00Z)
  |> filter(fn: (r) => r._measurement == "flight_prediction")`, c.bucket)
	res, err := c.query.Query(ctx, flux)
	if err != nil {
		return nil, err
	}
	defer res.Close()
	fields := map[string]any{}
	for res.Next() {
		rec := res.Record()
		fields[rec.Field()] = rec.Value()
	}
	return fields, res.Err()
}

// Close releases the underlying client resources.
func (c *InfluxClient) Close() { c.client.Close() }
