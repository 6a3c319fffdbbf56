package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lychee-technology/xrosedb"
	"github.com/lychee-technology/xrosedb/internal/layers"
	"github.com/lychee-technology/xrosedb/internal/models"
	"github.com/lychee-technology/xrosedb/internal/store"
	"github.com/ulikunitz/xz"
)

// TablesCmd lists every table with its row count.
type TablesCmd struct{}

func (c *TablesCmd) Run(app *App) error {
	tables, err := app.store.Tables(app.ctx)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(tables))
	for _, t := range tables {
		n, err := app.store.Count(app.ctx, t.Name)
		if err != nil {
			return err
		}
		kind := "data"
		if xrosedb.IsDocumentTable(t.Name) {
			kind = "document"
		}
		rows = append(rows, []string{t.Name, kind, strconv.FormatInt(n, 10)})
	}
	renderTable(app.out, []string{"Table", "Kind", "Rows"}, rows)
	return nil
}

// SchemaCmd prints a table's CREATE statement.
type SchemaCmd struct {
	Table string `arg:"" help:"Table name."`
}

func (c *SchemaCmd) Run(app *App) error {
	tables, err := app.store.Tables(app.ctx)
	if err != nil {
		return err
	}
	for _, t := range tables {
		if t.Name == c.Table && t.SQL != nil {
			fmt.Fprintln(app.out, *t.SQL)
			return nil
		}
	}
	return xrosedb.NewDataNotFoundError(c.Table)
}

// ColumnsCmd describes a table's columns.
type ColumnsCmd struct {
	Table string `arg:"" help:"Table name."`
}

func (c *ColumnsCmd) Run(app *App) error {
	columns, err := app.store.Engine().Columns(app.ctx, app.store.DB(), c.Table)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(columns))
	for _, col := range columns {
		rows = append(rows, []string{
			strconv.Itoa(col.Index),
			col.Name,
			col.DeclaredType,
			string(col.Affinity),
			yesNo(col.Boolean),
			yesNo(col.NotNull),
			yesNo(col.PrimaryKey),
		})
	}
	renderTable(app.out, []string{"#", "Column", "Declared", "Affinity", "Boolean", "Not Null", "Key"}, rows)
	return nil
}

// ColorsCmd lists the palette.
type ColorsCmd struct{}

func (c *ColorsCmd) Run(app *App) error {
	colors, err := xrosedb.ExecuteCodableQuery[models.Color](app.ctx, app.store.Engine(), app.store.DB(), models.ColorSchema.StoredValues())
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(colors))
	for _, col := range colors {
		rows = append(rows, []string{
			strconv.Itoa(col.ColorID),
			formatFloat(col.Red),
			formatFloat(col.Green),
			formatFloat(col.Blue),
			formatFloat(col.Alpha),
		})
	}
	renderTable(app.out, []string{"Id", "Red", "Green", "Blue", "Alpha"}, rows)
	return nil
}

// LayersCmd lists the layers.
type LayersCmd struct{}

func (c *LayersCmd) Run(app *App) error {
	ls, err := app.store.ReadLayers(app.ctx)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(ls))
	for i, l := range ls {
		base := l.Common()
		rows = append(rows, []string{
			strconv.Itoa(i),
			l.TypeName(),
			base.Name,
			yesNo(base.Visible),
			yesNo(base.Active),
			formatColor(base.Stroke),
			formatColor(base.Fill),
			layerDetail(l),
		})
	}
	renderTable(app.out, []string{"#", "Type", "Name", "Visible", "Active", "Stroke", "Fill", "Detail"}, rows)
	return nil
}

func layerDetail(l layers.Layer) string {
	switch v := l.(type) {
	case *layers.Core:
		return "radius " + formatFloat(v.Radius)
	case *layers.Text:
		return strconv.Quote(v.Contents.Text)
	case *layers.LineArrow:
		return "dataset " + strconv.Itoa(v.DataSetID)
	case *layers.Grid:
		return fmt.Sprintf("%d radials, rings font %s %s", v.Radials.Count, v.Rings.Font.Name, formatFloat(v.Rings.Font.Size))
	case *layers.Data:
		return fmt.Sprintf("dataset %d, plot type %d", v.DataSetID, v.PlotType)
	}
	return ""
}

// GeometryCmd prints the geometry row.
type GeometryCmd struct{}

func (c *GeometryCmd) Run(app *App) error {
	g, err := app.store.Geometry(app.ctx)
	if err != nil {
		return err
	}
	renderTable(app.out, []string{"Setting", "Value"}, [][]string{
		{"equal area", yesNo(g.IsEqualArea)},
		{"percent", yesNo(g.IsPercent)},
		{"max count", strconv.Itoa(g.MaxCount)},
		{"max percent", formatFloat(g.MaxPercent)},
		{"hollow core", formatFloat(g.HollowCore)},
		{"sector size", formatFloat(g.SectorSize)},
		{"starting angle", formatFloat(g.StartingAngle)},
		{"sector count", strconv.Itoa(g.SectorCount)},
		{"relative size", formatFloat(g.RelativeSize)},
	})
	return nil
}

// WindowCmd prints the window size.
type WindowCmd struct{}

func (c *WindowCmd) Run(app *App) error {
	w, err := app.store.WindowSize(app.ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(app.out, "%s x %s\n", formatFloat(w.Width), formatFloat(w.Height))
	return nil
}

// DatasetsCmd lists the dataset definitions.
type DatasetsCmd struct{}

func (c *DatasetsCmd) Run(app *App) error {
	sets, err := app.store.DataSets(app.ctx)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(sets))
	for _, d := range sets {
		predicate := ""
		if d.Predicate != nil {
			predicate = *d.Predicate
		}
		rows = append(rows, []string{strconv.Itoa(d.ID), d.Name, d.TableName, d.ColumnName, predicate})
	}
	renderTable(app.out, []string{"Id", "Name", "Table", "Column", "Predicate"}, rows)
	return nil
}

// QueryCmd runs one statement.
type QueryCmd struct {
	SQL string `arg:"" name:"sql" help:"SQL statement."`
}

func (c *QueryCmd) Run(app *App) error {
	rows, err := app.store.Query(app.ctx, c.SQL)
	renderRows(app.out, rows)
	return err
}

// ExportCmd writes a table's rows as a JSON array.
type ExportCmd struct {
	Table  string `arg:"" help:"Table name."`
	Output string `name:"output" short:"o" type:"path" help:"Output file. Defaults to stdout."`
	XZ     bool   `name:"xz" help:"Compress the output with xz."`
}

func (c *ExportCmd) Run(app *App) error {
	if _, err := app.store.Engine().Columns(app.ctx, app.store.DB(), c.Table); err != nil {
		return err
	}
	q := xrosedb.NewQuery(`SELECT * FROM "` + strings.ReplaceAll(c.Table, `"`, `""`) + `";`)
	data, err := app.store.Engine().ExecuteDataQuery(app.ctx, app.store.DB(), q)
	if err != nil {
		return err
	}

	var w io.Writer = app.out
	if c.Output != "" {
		f, err := os.Create(c.Output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if c.XZ {
		xw, err := xz.NewWriter(w)
		if err != nil {
			return err
		}
		if _, err := xw.Write(data); err != nil {
			return err
		}
		return xw.Close()
	}
	var pretty []json.RawMessage
	if err := json.Unmarshal(data, &pretty); err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(pretty)
}

// DigestCmd prints the digest of the document file.
type DigestCmd struct{}

func (c *DigestCmd) Run(app *App) error {
	if app.document == "" {
		return xrosedb.NewFileNotFoundError("")
	}
	digest, err := store.DocumentDigest(app.document)
	if err != nil {
		return err
	}
	fmt.Fprintf(app.out, "%s  %s\n", digest, app.document)
	return nil
}

// SnapshotCmd writes a compressed snapshot.
type SnapshotCmd struct {
	Output string `arg:"" type:"path" help:"Snapshot file to write."`
}

func (c *SnapshotCmd) Run(app *App) error {
	snap, err := app.store.Snapshot(app.ctx, c.Output)
	if err != nil {
		return err
	}
	fmt.Fprintf(app.out, "%s  %s (%d bytes)\n", snap.Digest, snap.Path, snap.Size)
	return nil
}

// RestoreCmd expands a snapshot into a plain document.
type RestoreCmd struct {
	Snapshot string `arg:"" type:"existingfile" help:"Snapshot file to read."`
	Output   string `arg:"" type:"path" help:"Document file to write."`
	Digest   string `name:"digest" help:"Expected BLAKE3 digest of the document."`
}

func (c *RestoreCmd) Run(app *App) error {
	if err := app.store.RestoreSnapshot(app.ctx, c.Snapshot, c.Digest); err != nil {
		return err
	}
	return app.store.Save(app.ctx, c.Output)
}

// ImportCmd loads a CSV file into a new data table.
type ImportCmd struct {
	File      string   `arg:"" type:"existingfile" help:"CSV file with a header row."`
	Table     string   `name:"table" short:"t" help:"Table name. Defaults to the file name."`
	BatchSize int      `name:"batch-size" default:"100" help:"Rows per insert batch."`
	Datasets  []string `name:"dataset" help:"Add a dataset for this column."`
	Save      bool     `name:"save" help:"Write the document back after importing."`
}

func (c *ImportCmd) Run(app *App) error {
	table := c.Table
	if table == "" {
		table = strings.TrimSuffix(filepath.Base(c.File), filepath.Ext(c.File))
	}
	f, err := os.Open(c.File)
	if err != nil {
		return err
	}
	defer f.Close()

	result, err := app.store.ImportCSV(app.ctx, table, f, c.BatchSize)
	if err != nil {
		return err
	}
	fmt.Fprintln(app.out, result.Summary())

	imported := make(map[string]bool, len(result.Columns))
	for _, col := range result.Columns {
		imported[col.Name] = true
	}
	for _, column := range c.Datasets {
		if !imported[column] {
			return xrosedb.NewStoreError(xrosedb.ErrorTypeNotFound, xrosedb.ErrCodeDataNotFound, "no such column").
				WithTable(table).WithField(column)
		}
	}

	for _, column := range c.Datasets {
		id, err := app.store.NextDataSetID(app.ctx)
		if err != nil {
			return err
		}
		d := models.DataSet{ID: id, Name: table + "." + column, TableName: table, ColumnName: column}
		if err := app.store.AddDataSet(app.ctx, d); err != nil {
			return err
		}
		fmt.Fprintf(app.out, "dataset %d: %s\n", id, d.Name)
	}

	if c.Save {
		if app.document == "" {
			return xrosedb.NewFileNotFoundError("")
		}
		return app.store.Save(app.ctx, app.document)
	}
	return nil
}
