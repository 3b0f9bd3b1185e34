/*
 * Copyright 2026 Kasabi SDK Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package kasabi

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
)

const formContentType = "application/x-www-form-urlencoded"

// storeURL returns the update endpoint of the named dataset.
func (c *Client) storeURL(dataset string) (*url.URL, error) {
	if dataset == "" {
		return nil, fmt.Errorf("%w: dataset name is empty", ErrInvalidArgument)
	}
	return url.Parse(c.config.Endpoint + "/dataset/" + url.PathEscape(dataset) + "/store")
}

// UpdateFromURI asks the service to load the data found at dataURI into the
// dataset. The returned handle can be polled with IsApplied or CheckStatus.
func (c *Client) UpdateFromURI(ctx context.Context, dataset, dataURI string) (StatusHandle, error) {
	u, err := c.storeURL(dataset)
	if err != nil {
		return "", err
	}

	form := url.Values{}
	form.Set("data-uri", dataURI)
	form.Set("apikey", c.config.APIKey)

	resp, err := c.post(ctx, "update from uri", u, formContentType, []byte(form.Encode()))
	if err != nil {
		return "", err
	}
	if err := checkStatus2xx("update from uri", resp); err != nil {
		return "", err
	}

	handle := StatusHandle(strings.TrimSpace(string(resp.Body)))
	c.addStatusHandle(handle)
	c.logger.Info("submitted update",
		zap.String("dataset", dataset),
		zap.String("data_uri", dataURI),
		zap.String("status", string(handle)))
	return handle, nil
}

// UpdateFromFile uploads the file at path to the dataset.
//
// Files of Config.MaxLinesPerPart lines or more are split into parts that are
// uploaded one after another, in order. Each accepted part yields one status
// handle. The file must be line oriented (e.g. N-Triples): a part boundary
// falls between lines, which is only safe for formats where every line stands
// alone.
//
// The first rejected part stops the upload and an *UploadError is returned
// along with the handles of the parts already accepted. Accepted parts are not
// rolled back. Parts written by the splitter are deleted once accepted; the
// rejected part and those after it are left on disk.
func (c *Client) UpdateFromFile(ctx context.Context, dataset, path, contentType string) ([]StatusHandle, error) {
	u, err := c.storeURL(dataset)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("apikey", c.config.APIKey)
	u.RawQuery = q.Encode()

	parts, err := NewSplitter(c.config.MaxLinesPerPart, c.config.TempDir).Split(path)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("split file",
		zap.String("path", path),
		zap.Int("parts", len(parts)))

	var cleanup *multierror.Error
	handles := make([]StatusHandle, 0, len(parts))
	for i, part := range parts {
		handle, err := c.uploadPart(ctx, u, part, contentType)
		if err != nil {
			c.logger.Error("part upload failed",
				zap.String("dataset", dataset),
				zap.String("part", part.Path),
				zap.Int("index", part.Index),
				zap.Error(err))
			return handles, &UploadError{
				Part:      part,
				Remaining: parts[i+1:],
				Uploaded:  handles,
				Err:       err,
			}
		}

		handles = append(handles, handle)
		c.addStatusHandle(handle)
		c.logger.Info("uploaded part",
			zap.String("dataset", dataset),
			zap.String("part", part.Path),
			zap.Int("index", part.Index),
			zap.Int("lines", part.Lines),
			zap.String("status", string(handle)))

		if err := removePart(part); err != nil {
			cleanup = multierror.Append(cleanup, err)
		}
	}
	if err := removeSplitDir(parts); err != nil {
		cleanup = multierror.Append(cleanup, err)
	}
	if err := cleanup.ErrorOrNil(); err != nil {
		c.logger.Warn("failed to remove part files", zap.Error(err))
	}
	return handles, nil
}

func (c *Client) uploadPart(ctx context.Context, u *url.URL, part PartFile, contentType string) (StatusHandle, error) {
	data, err := os.ReadFile(part.Path)
	if err != nil {
		return "", newError(ErrIO, "upload part", err)
	}

	resp, err := c.post(ctx, "upload part", u, contentType, data)
	if err != nil {
		return "", err
	}
	if err := checkStatus2xx("upload part", resp); err != nil {
		return "", err
	}
	return StatusHandle(strings.TrimSpace(string(resp.Body))), nil
}

// UpdateFromData uploads data to the dataset. The data is staged in a
// temporary file under Config.TempDir and then handled like UpdateFromFile. The
// temporary file is removed afterwards whether or not the upload succeeded.
func (c *Client) UpdateFromData(ctx context.Context, dataset string, data io.Reader, contentType string) ([]StatusHandle, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}
	path := filepath.Join(c.config.TempDir, "temporary_data_"+id.String())

	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			c.logger.Warn("failed to remove temporary data file",
				zap.String("path", path),
				zap.Error(err))
		}
	}()
	if err := writeTempData(path, data); err != nil {
		return nil, newError(ErrIO, "update from data", err)
	}

	return c.UpdateFromFile(ctx, dataset, path, contentType)
}

func writeTempData(path string, data io.Reader) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	_, err = io.Copy(f, data)
	return err
}
