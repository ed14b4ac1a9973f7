package source

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"

	"timelanes/internal/config"
	"timelanes/internal/timeline"
)

// ReadJSON reads task records from a JSON document. The field paths are
// gjson paths taken from the json section of the configuration, so
// exports from other tools can be read without conversion.
func ReadJSON(filename string, cfg config.Config) ([]timeline.Record, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading JSON file: %w", err)
	}
	return parseJSON(data, cfg)
}

func parseJSON(data []byte, cfg config.Config) ([]timeline.Record, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("error parsing JSON file: invalid JSON")
	}

	root := gjson.ParseBytes(data)
	list := root
	switch {
	case cfg.JSON.Tasks != "":
		list = root.Get(cfg.JSON.Tasks)
	case !root.IsArray():
		list = root.Get("tasks")
	}
	if !list.IsArray() {
		return nil, fmt.Errorf("error parsing JSON file: no task array found")
	}

	var records []timeline.Record
	list.ForEach(func(_, item gjson.Result) bool {
		rec := timeline.Record{
			ID:    item.Get(cfg.JSON.ID).String(),
			Name:  item.Get(cfg.JSON.Name).String(),
			Start: item.Get(cfg.JSON.Start).String(),
			End:   item.Get(cfg.JSON.End).String(),
		}
		if cfg.JSON.Labels != "" {
			item.Get(cfg.JSON.Labels).ForEach(func(k, v gjson.Result) bool {
				if rec.Labels == nil {
					rec.Labels = make(map[string]string)
				}
				rec.Labels[k.String()] = v.String()
				return true
			})
		}
		records = append(records, rec)
		return true
	})
	return records, nil
}
