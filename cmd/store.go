/*
Copyright © 2025 The inslake authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"

	"github.com/gnames/gn"

	"github.com/inslake/inslake/internal/iostorage"
	"github.com/inslake/inslake/pkg/storage"
)

// newStore connects the configured storage backend and reports it.
func newStore(ctx context.Context) (storage.Store, error) {
	store, err := iostorage.New(ctx, cfg)
	if err != nil {
		return nil, err
	}

	switch cfg.Storage.Backend {
	case "s3":
		gn.Info("Using S3 storage: <em>%s</em> (%s)",
			cfg.Storage.Bucket, cfg.Storage.Region)
	case "dir":
		gn.Info("Using directory storage: <em>%s</em>",
			cfg.ResolvedStoragePath())
	default:
		gn.Info("Using sqlite storage: <em>%s</em>",
			cfg.ResolvedStoragePath())
	}

	return store, nil
}
