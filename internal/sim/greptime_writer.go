package sim

import (
	"context"

	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	ingesterContext "github.com/GreptimeTeam/greptimedb-ingester-go/context"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"

	"vitalsim/internal/vitals"
)

// GreptimeDBWriter writes vitals rows to GreptimeDB via the ingester client.
type GreptimeDBWriter struct {
	client *greptime.Client
	db     string
	table  string
}

// NewGreptimeDBWriter creates a new GreptimeDB writer. The vitals table is
// auto-created on first write with the schema below and a 30d TTL (passed as
// an ingester hint):
//
//	CREATE TABLE IF NOT EXISTS <table> (
//	  monitor_id STRING TAG,
//	  tick DOUBLE,
//	  phase STRING,
//	  heart_rate DOUBLE,
//	  bp_systolic DOUBLE,
//	  spo2 DOUBLE,
//	  score DOUBLE,
//	  status STRING,
//	  ts TIMESTAMP TIME INDEX
//	) WITH (ttl='30d')
func NewGreptimeDBWriter(endpoint, database string) (*GreptimeDBWriter, error) {
	cfg := greptime.NewConfig(endpoint).WithDatabase(database)
	client, err := greptime.NewClient(cfg)
	if err != nil {
		return nil, err
	}

	return &GreptimeDBWriter{
		client: client,
		db:     database,
		table:  vitals.VitalsTableName,
	}, nil
}

// Write inserts a single vitals row.
func (w *GreptimeDBWriter) Write(row vitals.VitalsRow) error {
	return w.WriteBatch([]vitals.VitalsRow{row})
}

// WriteBatch inserts multiple vitals rows.
func (w *GreptimeDBWriter) WriteBatch(rows []vitals.VitalsRow) error {
	if len(rows) == 0 {
		return nil
	}

	ctx := ingesterContext.New(context.Background(), ingesterContext.WithHints("ttl=30d"))

	tbl, err := table.New(w.table)
	if err != nil {
		return err
	}
	tbl.AddTagColumn("monitor_id", types.STRING)
	tbl.AddFieldColumn("tick", types.FLOAT64)
	tbl.AddFieldColumn("phase", types.STRING)
	tbl.AddFieldColumn("heart_rate", types.FLOAT64)
	tbl.AddFieldColumn("bp_systolic", types.FLOAT64)
	tbl.AddFieldColumn("spo2", types.FLOAT64)
	tbl.AddFieldColumn("score", types.FLOAT64)
	tbl.AddFieldColumn("status", types.STRING)
	tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND)

	for _, r := range rows {
		if err := tbl.AddRow(
			r.MonitorID,
			float64(r.Tick),
			string(r.Phase),
			r.HeartRate,
			r.BPSystolic,
			r.SpO2,
			float64(r.Score),
			r.Status,
			r.Timestamp,
		); err != nil {
			return err
		}
	}

	_, err = w.client.Write(ctx, tbl)
	return err
}
