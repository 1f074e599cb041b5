package storage

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
)

// OpenOptions carries the settings Open needs for remote backends.
type OpenOptions struct {
	Region   string
	Endpoint string
	// Credentials overrides the default provider chain when set.
	Credentials aws.CredentialsProvider
}

// Open resolves a storage URL into a backend.
//
//	/var/lib/roadmap          -> LocalStore
//	file:///var/lib/roadmap   -> LocalStore
//	s3://bucket/some/prefix   -> S3Store
func Open(ctx context.Context, rawURL string, opts OpenOptions) (BlobStore, error) {
	if rawURL == "" {
		return nil, fmt.Errorf("storage url is empty")
	}
	if !strings.Contains(rawURL, "://") {
		return NewLocalStore(rawURL), nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid storage url %q: %w", rawURL, err)
	}

	switch u.Scheme {
	case "file":
		// file://relative/dir parses the first segment as a host.
		dir := u.Host + u.Path
		if dir == "" {
			return nil, fmt.Errorf("storage url %q has no path", rawURL)
		}
		return NewLocalStore(dir), nil
	case "s3":
		if u.Host == "" {
			return nil, fmt.Errorf("storage url %q has no bucket", rawURL)
		}
		loadOpts := []func(*awsconfig.LoadOptions) error{}
		if opts.Region != "" {
			loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
		}
		if opts.Credentials != nil {
			loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(opts.Credentials))
		}
		cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to load aws config: %w", err)
		}
		return NewS3Store(cfg, u.Host, u.Path, WithEndpoint(opts.Endpoint)), nil
	default:
		return nil, fmt.Errorf("unsupported storage scheme %q", u.Scheme)
	}
}
