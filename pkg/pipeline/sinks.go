package pipeline

import (
	"context"
	"errors"

	"github.com/dd0wney/cluso-fraudgen/pkg/config"
	"github.com/dd0wney/cluso-fraudgen/pkg/sink"
)

// OpenSinks builds the configured sinks: the output directory always, then
// S3 and PostgreSQL when enabled. On failure the sinks already opened are
// closed again.
func OpenSinks(ctx context.Context, cfg *config.Config) ([]sink.Sink, error) {
	dir, err := sink.NewDirSink(cfg.Output.Dir, cfg.Snappy())
	if err != nil {
		return nil, err
	}
	sinks := []sink.Sink{dir}

	if cfg.S3.Enabled {
		s3Sink, err := sink.NewS3Sink(ctx, sink.S3Options{
			Bucket:          cfg.S3.Bucket,
			Prefix:          cfg.S3.Prefix,
			Region:          cfg.S3.Region,
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
		})
		if err != nil {
			return nil, errors.Join(err, CloseSinks(sinks))
		}
		sinks = append(sinks, s3Sink)
	}

	if cfg.Postgres.Enabled {
		pg, err := sink.NewPostgresSink(ctx, cfg.Postgres.URL, cfg.Postgres.Schema, cfg.Postgres.MaxConns)
		if err != nil {
			return nil, errors.Join(err, CloseSinks(sinks))
		}
		sinks = append(sinks, pg)
	}

	return sinks, nil
}

// CloseSinks closes every sink and joins their errors.
func CloseSinks(sinks []sink.Sink) error {
	return sink.NewMulti(sinks...).Close()
}
