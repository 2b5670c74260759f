/*
Copyright (C) 2026  OpenPMD-Go Contributors

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU General Public License as published by
	the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU General Public License for more details.

	You should have received a copy of the GNU General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
package media

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config names the bucket/prefix an S3 medium addresses and optional
// explicit credentials, mirroring the teacher's S3Factory fields.
type S3Config struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Endpoint        string
	Bucket          string
	Prefix          string
	ForcePathStyle  bool
}

// S3 is an aws-sdk-go-v2-backed Medium, a direct generalization of the
// teacher's persistence-s3.go buffered whole-object write model: S3 has
// no append, so writes are buffered in memory and PutObject'd whole on
// Close, replacing any existing object without reading it first.
type S3 struct {
	cfg S3Config

	mu     sync.Mutex
	client *s3.Client
	opened bool
}

func NewS3(cfg S3Config) *S3 {
	return &S3{cfg: cfg}
}

func (m *S3) ensureOpen() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.opened {
		return nil
	}

	ctx := context.Background()
	var opts []func(*config.LoadOptions) error
	if m.cfg.Region != "" {
		opts = append(opts, config.WithRegion(m.cfg.Region))
	}
	if m.cfg.AccessKeyID != "" && m.cfg.SecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(m.cfg.AccessKeyID, m.cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return err
	}

	var s3Opts []func(*s3.Options)
	if m.cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) { o.BaseEndpoint = aws.String(m.cfg.Endpoint) })
	}
	if m.cfg.ForcePathStyle {
		s3Opts = append(s3Opts, func(o *s3.Options) { o.UsePathStyle = true })
	}

	m.client = s3.NewFromConfig(awsCfg, s3Opts...)
	m.opened = true
	return nil
}

func (m *S3) key(name string) string {
	if m.cfg.Prefix == "" {
		return name
	}
	return strings.TrimSuffix(m.cfg.Prefix, "/") + "/" + name
}

func (m *S3) Open(name string) (io.ReadCloser, error) {
	if err := m.ensureOpen(); err != nil {
		return nil, err
	}
	resp, err := m.client.GetObject(context.Background(), &s3.GetObjectInput{
		Bucket: aws.String(m.cfg.Bucket),
		Key:    aws.String(m.key(name)),
	})
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

type s3WriteCloser struct {
	m      *S3
	key    string
	buf    bytes.Buffer
	closed bool
}

func (w *s3WriteCloser) Write(p []byte) (int, error) {
	if w.closed {
		return 0, io.ErrClosedPipe
	}
	return w.buf.Write(p)
}

func (w *s3WriteCloser) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	_, err := w.m.client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket: aws.String(w.m.cfg.Bucket),
		Key:    aws.String(w.key),
		Body:   bytes.NewReader(w.buf.Bytes()),
	})
	return err
}

func (m *S3) Create(name string) (io.WriteCloser, error) {
	if err := m.ensureOpen(); err != nil {
		return nil, err
	}
	return &s3WriteCloser{m: m, key: m.key(name)}, nil
}

func (m *S3) Remove(name string) error {
	if err := m.ensureOpen(); err != nil {
		return err
	}
	_, err := m.client.DeleteObject(context.Background(), &s3.DeleteObjectInput{
		Bucket: aws.String(m.cfg.Bucket),
		Key:    aws.String(m.key(name)),
	})
	return err
}

func (m *S3) List(prefix string) ([]string, error) {
	if err := m.ensureOpen(); err != nil {
		return nil, err
	}
	var out []string
	paginator := s3.NewListObjectsV2Paginator(m.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(m.cfg.Bucket),
		Prefix: aws.String(m.key(prefix)),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(context.Background())
		if err != nil {
			return nil, err
		}
		for _, obj := range page.Contents {
			out = append(out, strings.TrimPrefix(aws.ToString(obj.Key), m.key("")))
		}
	}
	return out, nil
}
