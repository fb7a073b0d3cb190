package jsonl

import (
	"fmt"

	"github.com/go-reckon/reckon"
	"github.com/tidwall/gjson"
)

// buildBatch extracts the configured columns from a slice of JSON lines,
// producing one same-length Column per ColumnConf
func buildBatch(confs []ColumnConf, lines []string) (*reckon.Batch, error) {
	cols := make([]reckon.Column, len(confs))
	for i, conf := range confs {
		col, err := buildColumn(conf, lines)
		if err != nil {
			return nil, err
		}
		cols[i] = col
	}
	return reckon.CreateBatch(cols...)
}

func buildColumn(conf ColumnConf, lines []string) (reckon.Column, error) {
	switch conf.Kind {
	case reckon.KindInt:
		vals := make(reckon.IntColumn, len(lines))
		for i, line := range lines {
			res := gjson.Get(line, conf.Path)
			if res.Exists() && res.Type != gjson.Number {
				return nil, fmt.Errorf("Column %s was not a number. Was: %s", conf.Path, res.String())
			}
			vals[i] = res.Int()
		}
		return vals, nil
	case reckon.KindFloat:
		vals := make(reckon.FloatColumn, len(lines))
		for i, line := range lines {
			res := gjson.Get(line, conf.Path)
			if res.Exists() && res.Type != gjson.Number {
				return nil, fmt.Errorf("Column %s was not a number. Was: %s", conf.Path, res.String())
			}
			vals[i] = res.Float()
		}
		return vals, nil
	case reckon.KindString:
		vals := make(reckon.StringColumn, len(lines))
		for i, line := range lines {
			vals[i] = gjson.Get(line, conf.Path).String()
		}
		return vals, nil
	default:
		return nil, fmt.Errorf("JSONL parsing does not support element kind %d", conf.Kind)
	}
}
