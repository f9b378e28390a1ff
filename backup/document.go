package backup

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Document is the backup file contents. It serializes as:
//
//	{ "smartsheet": { "sheet_name": ..., "columns": { <title>: { "column_id": ..., "rows": [...] } } },
//	  "backed_up": "Mon, 02 Jan 2006 15:04:05" }
type Document struct {
	BackedUp   string
	Smartsheet Smartsheet
}

type Smartsheet struct {
	SheetName string  `json:"sheet_name"`
	Columns   Columns `json:"columns"`
}

// Columns is a JSON object keyed by column title that keeps the sheet's column order.
type Columns []Column

type Column struct {
	Title    string `json:"-"`
	ColumnID int64  `json:"column_id"`
	Rows     []Row  `json:"rows"`
}

type Row struct {
	RowNumber         int             `json:"row_number"`
	RowID             int64           `json:"row_id"`
	ContentAndHistory json.RawMessage `json:"content_and_history"`
}

func (d Document) MarshalJSON() ([]byte, error) {
	smartsheet, err := json.Marshal(d.Smartsheet)
	if err != nil {
		return nil, err
	}

	b := []byte(`{}`)
	if b, err = sjson.SetRawBytes(b, "smartsheet", smartsheet); err != nil {
		return nil, err
	}

	if b, err = sjson.SetBytes(b, "backed_up", d.BackedUp); err != nil {
		return nil, err
	}

	return b, nil
}

func (d *Document) UnmarshalJSON(b []byte) error {
	document := struct {
		BackedUp   string     `json:"backed_up"`
		Smartsheet Smartsheet `json:"smartsheet"`
	}{}

	if err := json.Unmarshal(b, &document); err != nil {
		return err
	}

	d.BackedUp = document.BackedUp
	d.Smartsheet = document.Smartsheet

	return nil
}

func (c Columns) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer

	b.WriteString("{")
	for i, column := range c {
		if i > 0 {
			b.WriteString(",")
		}

		if column.Rows == nil {
			column.Rows = []Row{}
		}

		key, err := json.Marshal(column.Title)
		if err != nil {
			return nil, err
		}

		value, err := json.Marshal(column)
		if err != nil {
			return nil, err
		}

		b.Write(key)
		b.WriteString(":")
		b.Write(value)
	}
	b.WriteString("}")

	return b.Bytes(), nil
}

func (c *Columns) UnmarshalJSON(b []byte) error {
	if !gjson.ValidBytes(b) {
		return fmt.Errorf("invalid JSON for columns")
	}

	v := gjson.ParseBytes(b)
	if !v.IsObject() {
		return fmt.Errorf("expected JSON object for columns, got %v", v.Type)
	}

	columns := Columns{}

	var err error
	v.ForEach(func(key, value gjson.Result) bool {
		column := Column{
			Title: key.String(),
		}

		if err = json.Unmarshal([]byte(value.Raw), &column); err != nil {
			return false
		}

		columns = append(columns, column)

		return true
	})

	if err != nil {
		return err
	}

	*c = columns

	return nil
}

// set adds a column, replacing the contents of an existing column with the same title in place.
func (c *Columns) set(column Column) {
	for i := range *c {
		if (*c)[i].Title == column.Title {
			(*c)[i] = column
			return
		}
	}

	*c = append(*c, column)
}
