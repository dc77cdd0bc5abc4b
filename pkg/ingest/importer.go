package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/soundprediction/hestia/pkg/driver"
)

// schemaStatements creates the uniqueness constraints and filter indexes
// the candidate query depends on. All statements are idempotent.
var schemaStatements = []string{
	`CREATE CONSTRAINT property_id_unique IF NOT EXISTS
	FOR (p:Property) REQUIRE p.property_id IS UNIQUE`,
	`CREATE CONSTRAINT city_name_unique IF NOT EXISTS
	FOR (c:City) REQUIRE c.name IS UNIQUE`,
	`CREATE CONSTRAINT district_key_unique IF NOT EXISTS
	FOR (d:District) REQUIRE d.key IS UNIQUE`,
	`CREATE CONSTRAINT street_key_unique IF NOT EXISTS
	FOR (s:Street) REQUIRE s.key IS UNIQUE`,
	`CREATE CONSTRAINT tag_name_unique IF NOT EXISTS
	FOR (t:Tag) REQUIRE t.name IS UNIQUE`,
	`CREATE CONSTRAINT room_name_unique IF NOT EXISTS
	FOR (r:Room) REQUIRE r.name IS UNIQUE`,
	`CREATE CONSTRAINT property_type_unique IF NOT EXISTS
	FOR (pt:PropertyType) REQUIRE pt.name IS UNIQUE`,
	`CREATE CONSTRAINT image_url_unique IF NOT EXISTS
	FOR (img:Image) REQUIRE img.url IS UNIQUE`,
	`CREATE INDEX property_price IF NOT EXISTS FOR (p:Property) ON (p.total_price)`,
	`CREATE INDEX property_city IF NOT EXISTS FOR (p:Property) ON (p.city)`,
	`CREATE INDEX property_district IF NOT EXISTS FOR (p:Property) ON (p.district)`,
	`CREATE INDEX property_type IF NOT EXISTS FOR (p:Property) ON (p.property_type)`,
}

const checkExistsCypher = `
MATCH (p:Property {property_id: $property_id})
RETURN p.property_id AS property_id
LIMIT 1`

// importCypher merges one property with its location hierarchy, type,
// room/tag features, and images in a single statement.
const importCypher = `
MERGE (p:Property {property_id: $property_id})
SET
  p.title = $title,
  p.total_price = $total_price,
  p.property_type = $property_type,
  p.property_age = $property_age,
  p.gross_area = $gross_area,
  p.interior_area = $interior_area,
  p.public_area_ratio = $public_area_ratio,
  p.num_bedroom = $num_bedroom,
  p.num_bathroom = $num_bathroom,
  p.num_living_room = $num_living_room,
  p.floor = $floor,
  p.total_floors = $total_floors,
  p.land_ownership_area = $land_ownership_area,
  p.property_usage = $property_usage,
  p.orientation = $orientation,
  p.original_url = $original_url,
  p.description = $description,
  p.raw_description = $raw_description,
  p.city = $city,
  p.district = $district,
  p.street = $street

MERGE (c:City {name: $city})
MERGE (d:District {key: $district_key})
  ON CREATE SET d.name = $district
MERGE (s:Street {key: $street_key})
  ON CREATE SET s.name = $street

MERGE (d)-[:IN_CITY]->(c)
MERGE (s)-[:IN_DISTRICT]->(d)
MERGE (p)-[:LOCATED_ON]->(s)

MERGE (pt:PropertyType {name: $property_type})
MERGE (p)-[:HAS_TYPE]->(pt)

WITH p
UNWIND $extracted_feature_list AS rf
  MERGE (r:Room {name: rf.room})
  MERGE (p)-[:HAS_ROOM]->(r)
  WITH p, r, rf
  UNWIND rf.tag_list AS tagName
    MERGE (t:Tag {name: tagName})
    MERGE (r)-[:HAS_TAG]->(t)
    MERGE (p)-[:HAS_TAG]->(t)

WITH p
UNWIND $picture_list AS imgUrl
  MERGE (img:Image {url: imgUrl})
  MERGE (p)-[:HAS_IMAGE]->(img)`

// Stats summarizes one import run.
type Stats struct {
	Scanned   int
	Imported  int
	Skipped   int
	Failed    int
	Discarded int64
}

// Importer loads cleaned property JSON documents into the graph.
type Importer struct {
	driver driver.GraphDriver
	logger *slog.Logger
}

// NewImporter creates an importer over the given graph driver.
func NewImporter(d driver.GraphDriver, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{driver: d, logger: logger}
}

// EnsureSchema creates constraints and indexes. Safe to run repeatedly.
func (im *Importer) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if err := im.driver.ExecuteWrite(ctx, stmt, nil); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}
	return nil
}

// ImportDir imports every *.json file under dir in lexical order.
// Per-document failures are counted, logged, and do not stop the run.
func (im *Importer) ImportDir(ctx context.Context, dir string) (Stats, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return Stats{}, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	if len(paths) == 0 {
		return Stats{}, fmt.Errorf("no .json files found in %s", dir)
	}
	sort.Strings(paths)

	var stats Stats
	discards := &DiscardCounter{}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		stats.Scanned++
		imported, err := im.importFile(ctx, path, discards)
		if err != nil {
			stats.Failed++
			im.logger.Error("property import failed", "file", filepath.Base(path), "error", err)
			continue
		}
		if imported {
			stats.Imported++
		} else {
			stats.Skipped++
		}
	}

	stats.Discarded = discards.Count()
	im.logger.Info("import finished",
		"scanned", stats.Scanned,
		"imported", stats.Imported,
		"skipped", stats.Skipped,
		"failed", stats.Failed,
		"discarded_values", stats.Discarded)
	return stats, nil
}

// importFile loads one document, skipping properties that already exist.
// Returns true when the property was written.
func (im *Importer) importFile(ctx context.Context, path string, discards *DiscardCounter) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return false, fmt.Errorf("invalid json: %w", err)
	}

	params, err := buildParams(doc, discards)
	if err != nil {
		return false, err
	}

	exists, err := im.propertyExists(ctx, params["property_id"].(string))
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	if err := im.driver.ExecuteWrite(ctx, importCypher, params); err != nil {
		return false, err
	}
	return true, nil
}

func (im *Importer) propertyExists(ctx context.Context, propertyID string) (bool, error) {
	rows, err := im.driver.ExecuteRead(ctx, checkExistsCypher, map[string]any{"property_id": propertyID})
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}
