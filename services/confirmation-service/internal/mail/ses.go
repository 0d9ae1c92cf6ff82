package mail

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/go-faster/errors"
)

const charsetUTF8 = "UTF-8"

type sesAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SES sends through Amazon Simple Email Service.
type SES struct {
	Client sesAPI
}

// NewSES loads credentials from the default AWS chain. An empty region
// leaves the choice to the environment (AWS_REGION, shared config).
func NewSES(ctx context.Context, region string) (*SES, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "load aws config")
	}
	return &SES{Client: ses.NewFromConfig(cfg)}, nil
}

func (s *SES) Send(ctx context.Context, e Email) error {
	in := &ses.SendEmailInput{
		Source:      aws.String(e.Source),
		Destination: &types.Destination{ToAddresses: e.To},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(e.Subject), Charset: aws.String(charsetUTF8)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(e.TextBody), Charset: aws.String(charsetUTF8)},
			},
		},
	}
	if _, err := s.Client.SendEmail(ctx, in); err != nil {
		return errors.Wrap(err, "ses send email")
	}
	return nil
}
