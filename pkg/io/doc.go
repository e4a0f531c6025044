// Package io provides JSON import and export for layout snapshots.
//
// # JSON Format
//
//	{
//	  "rootElement": {"id": "form-1", "type": "form", "properties": {"method": "post"}},
//	  "rows": [
//	    {"id": "row-1", "columns": [
//	      {"id": "column-1", "width": 12, "fields": [
//	        {"id": "input-text-1", "type": "input-text",
//	         "properties": {"id": "input-text-1", "name": "input-text-1", "type": "text"},
//	         "meta": {"label": "Name"},
//	         "events": {"change": {"action": "validate"}}}
//	      ]}
//	    ]}
//	  ],
//	  "metadata": {"title": "Signup", "version": "2.0", "createdAt": "2026-01-02T15:04:05Z"}
//	}
//
// rootElement may be null. Rows need an id and a columns array; columns an
// id, a numeric width and a fields array; fields an id, a type key and a
// properties object. Node ids must be unique across the whole document.
//
// # Legacy Format
//
// Older documents carry the version at the top level and have no root
// element:
//
//	{"version": "1.0", "rows": [...], "metadata": {"title": "Signup"}}
//
// [ReadJSON] accepts both and normalizes legacy documents to the current
// shape. [WriteJSON] always writes the current one.
//
// # Validation
//
// Import is all or nothing. [ReadJSON] checks the whole document before it
// returns and reports every problem in one VALIDATION_FAILED error, with
// paths such as rows[0].columns[1].width. Nothing partial is ever returned.
package io
