// Package watch re-runs a callback whenever a file changes, using fsnotify.
//
// The CLI uses it to keep a token analysis of a draft prompt up to date:
//
//	w := watch.New("prompt.md")
//	err := w.Run(ctx, func(content string) error {
//	    a, err := mgr.AnalyzeText(content, "gpt-4")
//	    ...
//	})
package watch
