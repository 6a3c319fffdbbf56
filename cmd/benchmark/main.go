package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"strconv"
	"time"

	"github.com/lychee-technology/xrosedb"
	"github.com/lychee-technology/xrosedb/factory"
	"github.com/lychee-technology/xrosedb/internal/layers"
	"github.com/lychee-technology/xrosedb/internal/models"
	"github.com/lychee-technology/xrosedb/internal/store"
)

type options struct {
	layerCount   int
	rowCount     int
	iterations   int
	chunkSize    int
	output       string
	seed         int64
	seedProvided bool
}

func main() {
	log.SetFlags(0)

	opts := parseFlags()
	ctx := context.Background()

	s, err := factory.NewStoreWithConfig(ctx, xrosedb.DefaultConfig())
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer s.Close()

	if !opts.seedProvided {
		log.Printf("[info] Using random seed %d", opts.seed)
	}
	random := rand.New(rand.NewSource(opts.seed))

	if opts.rowCount > 0 {
		data := buildMeasurementsCSV(random, opts.rowCount)
		result, err := s.ImportCSV(ctx, "measurements", bytes.NewReader(data), opts.chunkSize)
		if err != nil {
			log.Fatalf("failed to import measurements: %v", err)
		}
		log.Printf("[info] %s", result.Summary())
		if err := s.AddDataSet(ctx, models.DataSet{ID: 1, Name: "Azimuth", TableName: "measurements", ColumnName: "azimuth"}); err != nil {
			log.Fatalf("failed to add dataset: %v", err)
		}
	}

	ls := buildLayers(random, opts.layerCount)
	var storeTotal, readTotal time.Duration
	for i := 0; i < opts.iterations; i++ {
		start := time.Now()
		if err := s.StoreLayers(ctx, ls); err != nil {
			log.Fatalf("failed to store layers: %v", err)
		}
		storeTotal += time.Since(start)

		start = time.Now()
		read, err := s.ReadLayers(ctx)
		if err != nil {
			log.Fatalf("failed to read layers: %v", err)
		}
		readTotal += time.Since(start)
		if len(read) != len(ls) {
			log.Fatalf("read %d layers, stored %d", len(read), len(ls))
		}
	}

	if err := seedDocument(ctx, s); err != nil {
		log.Fatalf("failed to store document settings: %v", err)
	}

	if opts.output != "" {
		if err := s.Save(ctx, opts.output); err != nil {
			log.Fatalf("failed to save %s: %v", opts.output, err)
		}
		log.Printf("[info] Wrote %s", opts.output)
	}

	log.Println("[success] Benchmark complete:")
	log.Printf("  - layers: %d per iteration, %d iterations", len(ls), opts.iterations)
	if opts.iterations > 0 {
		log.Printf("  - store: %v avg", storeTotal/time.Duration(opts.iterations))
		log.Printf("  - read: %v avg", readTotal/time.Duration(opts.iterations))
	}
	log.Printf("  - colors: %d", len(s.Factory().Colors()))
}

func parseFlags() options {
	var opts options

	flag.IntVar(&opts.layerCount, "layers", 500, "number of layers to generate")
	flag.IntVar(&opts.rowCount, "rows", 10000, "number of measurement rows to import")
	flag.IntVar(&opts.iterations, "iterations", 10, "store and read passes over the layers")
	flag.IntVar(&opts.chunkSize, "chunk-size", 500, "rows per insert batch")
	flag.StringVar(&opts.output, "output", "", "write the generated document to this file")
	seed := flag.Int64("seed", 0, "random seed (0 uses current time)")

	flag.Parse()

	if *seed == 0 {
		opts.seed = time.Now().UnixNano()
	} else {
		opts.seed = *seed
		opts.seedProvided = true
	}

	if opts.layerCount < 0 || opts.rowCount < 0 || opts.iterations < 0 {
		log.Fatal("counts must be non-negative")
	}
	return opts
}

func seedDocument(ctx context.Context, s *store.Store) error {
	if err := s.StoreGeometry(ctx, models.Geometry{
		IsEqualArea:   true,
		MaxCount:      100,
		MaxPercent:    0.25,
		SectorSize:    10,
		SectorCount:   36,
		RelativeSize:  1,
		StartingAngle: 0,
	}); err != nil {
		return err
	}
	return s.StoreWindowSize(ctx, models.WindowControllerSize{Width: 800, Height: 600})
}

func buildMeasurementsCSV(r *rand.Rand, count int) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{"station", "azimuth", "dip"})
	for i := 0; i < count; i++ {
		w.Write([]string{
			"S" + strconv.Itoa(r.Intn(20)),
			strconv.FormatFloat(r.Float64()*360, 'f', 2, 64),
			strconv.Itoa(r.Intn(90)),
		})
	}
	w.Flush()
	return buf.Bytes()
}

var palette = []layers.RGBA{
	{Red: 0, Green: 0, Blue: 0, Alpha: 1},
	{Red: 1, Green: 1, Blue: 1, Alpha: 1},
	{Red: 0.8, Green: 0.1, Blue: 0.1, Alpha: 1},
	{Red: 0.1, Green: 0.4, Blue: 0.8, Alpha: 0.5},
}

func randomChoice(r *rand.Rand, values []layers.RGBA) layers.RGBA {
	return values[r.Intn(len(values))]
}

func buildLayers(r *rand.Rand, count int) []layers.Layer {
	out := make([]layers.Layer, 0, count)
	for i := 0; i < count; i++ {
		base := layers.Base{
			Visible:    r.Intn(4) != 0,
			Name:       fmt.Sprintf("Layer %d", i),
			LineWeight: float32(r.Intn(4) + 1),
			MaxCount:   int32(r.Intn(200)),
			MaxPercent: r.Float32(),
			Stroke:     randomChoice(r, palette),
			Fill:       randomChoice(r, palette),
		}
		switch i % 5 {
		case 0:
			out = append(out, &layers.Core{Base: base, Radius: r.Float32(), Fixed: r.Intn(2) == 0})
		case 1:
			out = append(out, &layers.Text{
				Base:     base,
				Contents: layers.RichText{Text: fmt.Sprintf("Note %d", i), Font: layers.Font{Name: "Helvetica", Size: 12}},
				Rect:     layers.Rect{X: r.Float32() * 100, Y: r.Float32() * 100, Width: 120, Height: 24},
			})
		case 2:
			out = append(out, &layers.LineArrow{Base: base, DataSetID: 1, ArrowSize: 1, ShowVector: true})
		case 3:
			font := layers.Font{Name: "Helvetica", Size: 10}
			out = append(out, &layers.Grid{
				Base:    base,
				Rings:   layers.Rings{Visible: true, ShowLabels: true, FixedCount: 4, CountIncrement: 10, PercentIncrement: 0.05, Font: font},
				Radials: layers.Radials{Count: 36, Visible: true, ShowLabels: true, Font: font},
			})
		default:
			out = append(out, &layers.Data{Base: base, DataSetID: 1, PlotType: int32(r.Intn(4)), DotRadius: 2})
		}
	}
	return out
}
