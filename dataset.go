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
	"io"
)

// Dataset is a handle bound to a named Kasabi dataset.
type Dataset struct {
	c *Client

	// Name is the name of the dataset, as it appears in its URI.
	Name string
}

// Dataset returns a handle for the named dataset.
func (c *Client) Dataset(name string) *Dataset {
	return &Dataset{
		c:    c,
		Name: name,
	}
}

// StoreURI returns the URI updates to this dataset are posted to.
func (d *Dataset) StoreURI() (string, error) {
	u, err := d.c.storeURL(d.Name)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

// UpdateFromURI loads the data found at dataURI into the dataset.
func (d *Dataset) UpdateFromURI(ctx context.Context, dataURI string) (StatusHandle, error) {
	return d.c.UpdateFromURI(ctx, d.Name, dataURI)
}

// UpdateFromFile uploads a local file to the dataset, splitting it if needed.
func (d *Dataset) UpdateFromFile(ctx context.Context, path, contentType string) ([]StatusHandle, error) {
	return d.c.UpdateFromFile(ctx, d.Name, path, contentType)
}

// UpdateFromData uploads data to the dataset, splitting it if needed.
func (d *Dataset) UpdateFromData(ctx context.Context, data io.Reader, contentType string) ([]StatusHandle, error) {
	return d.c.UpdateFromData(ctx, d.Name, data, contentType)
}
