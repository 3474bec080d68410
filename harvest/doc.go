// Package harvest fetches the site pages used as answer context.
//
// A Harvester walks a fixed list of page URLs, reduces each page to plain
// text and keeps the resulting corpus for the life of the process. Pages that
// fail to fetch are logged and left out; the corpus may therefore be smaller
// than the URL list, or empty.
//
// # Usage
//
//	urls, _ := harvest.PageURLs("https://shop.example.com", harvest.DefaultPaths)
//	h, err := harvest.NewHarvester(harvest.NewHTTPFetcher(), urls)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	corpus, err := h.SiteContext(ctx)
package harvest
