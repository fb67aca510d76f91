// Package catalog indexes the rows of a rendered list form by field name.
//
// A Catalog is an explicit context object: it scans the page on first use,
// records whether the page uses the survey layout, and hands out lazily built
// fields. Rebuild and Invalidate discard the scan when the page changes.
//
//	cat := catalog.New(doc, catalog.WithHost(sim.Host()))
//	title, err := cat.Field("Title")
//	if err != nil {
//		return err
//	}
//	_ = title.SetValue("Quarterly report")
//	_ = cat.Hide("Notes")
package catalog
