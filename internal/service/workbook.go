package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/csko24143-droid/nust-room-search/config"
)

// WorkbookSource 時間割ワークブックの取得元
// 規約ベースの発見（最初に見つかった .xlsx を使う）を抽象化する。
type WorkbookSource interface {
	// Open ワークブックを開く。見つからなければ ErrDataSourceNotFound。
	Open(ctx context.Context) (io.ReadCloser, string, error)
}

// NewWorkbookSource 設定から取得元を組み立てる
func NewWorkbookSource(cfg *config.SourceConfig) (WorkbookSource, error) {
	switch cfg.Type {
	case "minio":
		client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
			Secure: cfg.MinIO.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("MinIO クライアントの生成に失敗: %w", err)
		}
		return &minioSource{
			client: client,
			bucket: cfg.MinIO.Bucket,
			prefix: cfg.MinIO.Prefix,
		}, nil
	default:
		return &localDirSource{dir: cfg.Dir, pattern: cfg.Pattern}, nil
	}
}

// ── ローカルディレクトリ ──

// localDirSource ディレクトリ内の glob 一致ファイルのうち
// 名前順で最初の 1 件を使う。
type localDirSource struct {
	dir     string
	pattern string
}

func (s *localDirSource) Open(_ context.Context) (io.ReadCloser, string, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, s.pattern))
	if err != nil {
		return nil, "", fmt.Errorf("ワークブックの探索に失敗: %w", err)
	}
	sort.Strings(matches)
	if len(matches) == 0 {
		return nil, "", ErrDataSourceNotFound
	}

	f, err := os.Open(matches[0])
	if err != nil {
		return nil, "", fmt.Errorf("ワークブックを開けません: %w", err)
	}
	return f, filepath.Base(matches[0]), nil
}

// ── MinIO ──

// minioSource バケットの prefix 以下で最初に見つかった .xlsx を使う
type minioSource struct {
	client *minio.Client
	bucket string
	prefix string
}

func (s *minioSource) Open(ctx context.Context) (io.ReadCloser, string, error) {
	var key string
	opts := minio.ListObjectsOptions{Prefix: s.prefix, Recursive: true}
	for object := range s.client.ListObjects(ctx, s.bucket, opts) {
		if object.Err != nil {
			return nil, "", fmt.Errorf("オブジェクト一覧の取得に失敗: %w", object.Err)
		}
		if strings.HasSuffix(strings.ToLower(object.Key), ".xlsx") {
			key = object.Key
			break
		}
	}
	if key == "" {
		return nil, "", ErrDataSourceNotFound
	}

	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, "", fmt.Errorf("オブジェクトの取得に失敗: %w", err)
	}
	return obj, path.Base(key), nil
}
