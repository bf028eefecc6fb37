package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"chatroom/internal/domain"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type S3Config struct {
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	Endpoint  string
}

// ObjectPutter is the subset of the S3 API the archiver uses.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// RoomArchiver uploads a JSON transcript of a room to S3.
type RoomArchiver struct {
	bucket string
	s3     ObjectPutter
	now    func() time.Time
}

func NewRoomArchiver(ctx context.Context, cfg S3Config) (*RoomArchiver, error) {
	if cfg.Region == "" || cfg.Bucket == "" {
		return nil, errors.New("s3 region and bucket are required")
	}

	var opts []func(*config.LoadOptions) error
	opts = append(opts, config.WithRegion(cfg.Region))

	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewRoomArchiverWithClient(cfg.Bucket, s3Client), nil
}

func NewRoomArchiverWithClient(bucket string, client ObjectPutter) *RoomArchiver {
	return &RoomArchiver{bucket: bucket, s3: client, now: time.Now}
}

type transcript struct {
	RoomID     string           `json:"roomId"`
	ArchivedAt time.Time        `json:"archivedAt"`
	Messages   []domain.Message `json:"messages"`
}

// ObjectKey is rooms/{room_id}/{unix_nanos}.json so repeated archives of a
// re-created room never overwrite each other.
func ObjectKey(roomID string, at time.Time) string {
	return fmt.Sprintf("rooms/%s/%d.json", roomID, at.UnixNano())
}

func (a *RoomArchiver) Archive(ctx context.Context, room domain.Room) error {
	at := a.now().UTC()
	messages := room.Messages
	if messages == nil {
		messages = []domain.Message{}
	}
	body, err := json.Marshal(transcript{RoomID: room.RoomID, ArchivedAt: at, Messages: messages})
	if err != nil {
		return fmt.Errorf("failed to marshal transcript: %w", err)
	}

	_, err = a.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(ObjectKey(room.RoomID, at)),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	return err
}
