// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package rds

import (
	"context"
	"fmt"

	"github.com/apex/log"
	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	rdsv2 "github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/rds/types"

	myaws "github.com/staranto/rdspggo/internal/aws"
	"github.com/staranto/rdspggo/internal/reconcile"
)

// modifyChunkSize is the ModifyDBParameterGroup limit on parameters per call.
const modifyChunkSize = 20

// API is the slice of the RDS service client this tool uses. Narrowed so
// tests can substitute a fake.
type API interface {
	DescribeDBParameterGroups(ctx context.Context, params *rdsv2.DescribeDBParameterGroupsInput, optFns ...func(*rdsv2.Options)) (*rdsv2.DescribeDBParameterGroupsOutput, error)
	DescribeDBParameters(ctx context.Context, params *rdsv2.DescribeDBParametersInput, optFns ...func(*rdsv2.Options)) (*rdsv2.DescribeDBParametersOutput, error)
	CreateDBParameterGroup(ctx context.Context, params *rdsv2.CreateDBParameterGroupInput, optFns ...func(*rdsv2.Options)) (*rdsv2.CreateDBParameterGroupOutput, error)
	ModifyDBParameterGroup(ctx context.Context, params *rdsv2.ModifyDBParameterGroupInput, optFns ...func(*rdsv2.Options)) (*rdsv2.ModifyDBParameterGroupOutput, error)
}

// Client wraps the RDS API for one region.
type Client struct {
	api    API
	Region string
}

// NewClient builds a Client for the given region using the standard AWS
// config chain.
func NewClient(ctx context.Context, region string, opts ...myaws.Option) (*Client, error) {
	opts = append(opts, myaws.WithRegion(region))
	cfg, err := myaws.LoadAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config for %s: %w", region, err)
	}
	return &Client{api: myaws.NewRDS(cfg), Region: region}, nil
}

// NewClientWithAPI wires an explicit API implementation. Used by tests.
func NewClientWithAPI(api API, region string) *Client {
	return &Client{api: api, Region: region}
}

// Group reads a parameter group and all of its parameters. A missing group
// surfaces the API error unchanged.
func (c *Client) Group(ctx context.Context, name string) (reconcile.Group, error) {
	out, err := c.api.DescribeDBParameterGroups(ctx, &rdsv2.DescribeDBParameterGroupsInput{
		DBParameterGroupName: awsv2.String(name),
	})
	if err != nil {
		return reconcile.Group{}, err
	}
	if len(out.DBParameterGroups) == 0 {
		return reconcile.Group{}, fmt.Errorf("parameter group %s not found in %s", name, c.Region)
	}

	summary := out.DBParameterGroups[0]
	group := reconcile.Group{
		Name:        awsv2.ToString(summary.DBParameterGroupName),
		Family:      awsv2.ToString(summary.DBParameterGroupFamily),
		Description: awsv2.ToString(summary.Description),
		ARN:         awsv2.ToString(summary.DBParameterGroupArn),
	}

	group.Params, err = c.Parameters(ctx, name)
	if err != nil {
		return reconcile.Group{}, err
	}

	log.Debugf("read %d parameters from %s (%s)", len(group.Params), name, c.Region)
	return group, nil
}

// Parameters reads every parameter of the named group, following Marker
// pagination until the API stops returning one.
func (c *Client) Parameters(ctx context.Context, name string) ([]reconcile.Parameter, error) {
	var params []reconcile.Parameter
	var marker *string
	for {
		page, err := c.api.DescribeDBParameters(ctx, &rdsv2.DescribeDBParametersInput{
			DBParameterGroupName: awsv2.String(name),
			Marker:               marker,
		})
		if err != nil {
			return nil, err
		}

		for _, p := range page.Parameters {
			params = append(params, fromAPI(p))
		}

		if page.Marker == nil {
			break
		}
		marker = page.Marker
	}
	return params, nil
}

// GroupNames lists every parameter group name in the region.
func (c *Client) GroupNames(ctx context.Context) ([]string, error) {
	var names []string
	var marker *string
	for {
		page, err := c.api.DescribeDBParameterGroups(ctx, &rdsv2.DescribeDBParameterGroupsInput{
			Marker: marker,
		})
		if err != nil {
			return nil, err
		}

		for _, g := range page.DBParameterGroups {
			names = append(names, awsv2.ToString(g.DBParameterGroupName))
		}

		if page.Marker == nil {
			break
		}
		marker = page.Marker
	}
	return names, nil
}

// CreateGroup creates an empty parameter group.
func (c *Client) CreateGroup(ctx context.Context, name, family, description string, tags map[string]string) error {
	input := &rdsv2.CreateDBParameterGroupInput{
		DBParameterGroupName:   awsv2.String(name),
		DBParameterGroupFamily: awsv2.String(family),
		Description:            awsv2.String(description),
	}
	for k, v := range tags {
		input.Tags = append(input.Tags, types.Tag{
			Key:   awsv2.String(k),
			Value: awsv2.String(v),
		})
	}

	_, err := c.api.CreateDBParameterGroup(ctx, input)
	return err
}

// Apply posts a ChangeSet to the named group in chunks of modifyChunkSize.
// Rejections (non-modifiable parameter, incompatible family) surface from
// the API unchanged; already-applied chunks are not rolled back.
func (c *Client) Apply(ctx context.Context, name string, cs reconcile.ChangeSet) error {
	if len(cs) == 0 {
		return nil
	}

	for start := 0; start < len(cs); start += modifyChunkSize {
		end := start + modifyChunkSize
		if end > len(cs) {
			end = len(cs)
		}

		chunk := make([]types.Parameter, 0, end-start)
		for _, ch := range cs[start:end] {
			chunk = append(chunk, types.Parameter{
				ParameterName:  awsv2.String(ch.Name),
				ParameterValue: awsv2.String(ch.Value),
				ApplyMethod:    applyMethod(ch),
			})
		}

		if _, err := c.api.ModifyDBParameterGroup(ctx, &rdsv2.ModifyDBParameterGroupInput{
			DBParameterGroupName: awsv2.String(name),
			Parameters:           chunk,
		}); err != nil {
			return fmt.Errorf("failed to modify %s: %w", name, err)
		}

		for _, ch := range cs[start:end] {
			log.Infof("applied %s = %s", ch.Name, ch.Value)
		}
	}

	return nil
}

// applyMethod maps the parameter's apply type to how a change takes effect.
// Static parameters must wait for a reboot; the API rejects "immediate" for
// them.
func applyMethod(ch reconcile.Change) types.ApplyMethod {
	if ch.ApplyType == "static" {
		return types.ApplyMethodPendingReboot
	}
	return types.ApplyMethodImmediate
}

// fromAPI converts an SDK parameter into the reconciler's shape.
func fromAPI(p types.Parameter) reconcile.Parameter {
	return reconcile.Parameter{
		Name:       awsv2.ToString(p.ParameterName),
		Value:      p.ParameterValue,
		ApplyType:  awsv2.ToString(p.ApplyType),
		Modifiable: awsv2.ToBool(p.IsModifiable),
	}
}
