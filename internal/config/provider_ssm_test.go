package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
)

type fakeSSM struct {
	values  map[string]string
	batches [][]string
	err     error
}

func (f *fakeSSM) GetParameters(_ context.Context, in *ssm.GetParametersInput, _ ...func(*ssm.Options)) (*ssm.GetParametersOutput, error) {
	f.batches = append(f.batches, in.Names)
	if f.err != nil {
		return nil, f.err
	}
	if !aws.ToBool(in.WithDecryption) {
		return nil, errors.New("decryption not requested")
	}
	out := &ssm.GetParametersOutput{}
	for _, name := range in.Names {
		v, ok := f.values[name]
		if !ok {
			out.InvalidParameters = append(out.InvalidParameters, name)
			continue
		}
		out.Parameters = append(out.Parameters, ssmtypes.Parameter{Name: aws.String(name), Value: aws.String(v)})
	}
	return out, nil
}

func TestSSMProviderSatisfiesSecretProvider(t *testing.T) {
	var _ SecretProvider = (*SSMProvider)(nil)
}

func TestSSMProviderBatches(t *testing.T) {
	client := &fakeSSM{values: map[string]string{}}
	var keys []string
	for i := 0; i < 23; i++ {
		k := fmt.Sprintf("/dev/fairweather/p%02d", i)
		keys = append(keys, k)
		client.values[k] = fmt.Sprintf("v%d", i)
	}

	p := newSSMProviderWithClient("eu-west-1", client)
	got, err := p.GetParametersBatch(context.Background(), keys)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 23 {
		t.Errorf("resolved %d parameters, want 23", len(got))
	}
	if len(client.batches) != 3 {
		t.Fatalf("made %d calls, want 3", len(client.batches))
	}
	if len(client.batches[2]) != 3 {
		t.Errorf("last batch has %d keys, want 3", len(client.batches[2]))
	}
}

func TestSSMProviderInvalidParameter(t *testing.T) {
	p := newSSMProviderWithClient("eu-west-1", &fakeSSM{values: map[string]string{}})
	_, err := p.GetParametersBatch(context.Background(), []string{"/dev/fairweather/nope"})
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestSSMProviderCallError(t *testing.T) {
	p := newSSMProviderWithClient("eu-west-1", &fakeSSM{err: errors.New("AccessDenied")})
	_, err := p.GetParametersBatch(context.Background(), []string{"/a"})
	if err == nil || !strings.Contains(err.Error(), "AccessDenied") {
		t.Fatalf("expected wrapped client error, got %v", err)
	}
}

func TestSSMProviderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := newSSMProviderWithClient("eu-west-1", &fakeSSM{})
	_, err := p.GetParametersBatch(ctx, []string{"/a"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSSMProviderEmptyKeys(t *testing.T) {
	got, err := NewSSMProvider("us-east-1").GetParametersBatch(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty map, got %v", got)
	}
}
