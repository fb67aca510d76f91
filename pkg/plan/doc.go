// Package plan loads value plans: ordered lists of field changes (value,
// visibility, read-only state) kept in JSON, YAML or TOML files.
//
//	fields:
//	  - name: Title
//	    value: Quarterly report
//	  - name: Website
//	    value: {url: "https://example.com", description: Example}
//	    readonly: true
//	  - name: Notes
//	    hidden: true
package plan
