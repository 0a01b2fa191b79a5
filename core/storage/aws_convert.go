package storage

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

func configurationFromSDK(in []types.LifecycleRule) *Configuration {
	out := &Configuration{Rules: make([]Rule, 0, len(in))}
	for _, r := range in {
		out.Rules = append(out.Rules, ruleFromSDK(r))
	}

	return out
}

func ruleFromSDK(in types.LifecycleRule) Rule {
	rule := Rule{
		ID:     aws.ToString(in.ID),
		Status: RuleStatus(in.Status),
		Filter: filterFromSDK(in),
		Native: in,
	}
	if in.AbortIncompleteMultipartUpload != nil {
		rule.AbortIncompleteMultipartUpload = &AbortIncompleteMultipartUpload{
			DaysAfterInitiation: aws.ToInt32(in.AbortIncompleteMultipartUpload.DaysAfterInitiation),
		}
	}
	if in.Expiration != nil {
		rule.Expiration = &Expiration{
			Days:                      aws.ToInt32(in.Expiration.Days),
			Date:                      in.Expiration.Date,
			ExpiredObjectDeleteMarker: aws.ToBool(in.Expiration.ExpiredObjectDeleteMarker),
		}
	}
	for _, t := range in.Transitions {
		rule.Transitions = append(rule.Transitions, Transition{
			Days:         aws.ToInt32(t.Days),
			Date:         t.Date,
			StorageClass: string(t.StorageClass),
		})
	}
	if in.NoncurrentVersionExpiration != nil {
		rule.NoncurrentVersionExpiration = &NoncurrentVersionExpiration{
			NoncurrentDays: aws.ToInt32(in.NoncurrentVersionExpiration.NoncurrentDays),
		}
	}

	return rule
}

func filterFromSDK(in types.LifecycleRule) Filter {
	switch f := in.Filter.(type) {
	case *types.LifecycleRuleFilterMemberPrefix:
		return Filter{Prefix: f.Value}
	case *types.LifecycleRuleFilterMemberTag:
		return Filter{Tags: []Tag{{Key: aws.ToString(f.Value.Key), Value: aws.ToString(f.Value.Value)}}}
	case *types.LifecycleRuleFilterMemberAnd:
		out := Filter{Prefix: aws.ToString(f.Value.Prefix)}
		for _, t := range f.Value.Tags {
			out.Tags = append(out.Tags, Tag{Key: aws.ToString(t.Key), Value: aws.ToString(t.Value)})
		}
		return out
	}

	// Legacy rules carry the prefix outside the filter.
	return Filter{Prefix: aws.ToString(in.Prefix)}
}

// ruleToSDK returns the rule as read when it came from S3, so unknown fields
// are written back unchanged. Rules built locally are converted field by field.
func ruleToSDK(in Rule) types.LifecycleRule {
	if native, ok := in.Native.(types.LifecycleRule); ok {
		return native
	}

	rule := types.LifecycleRule{
		ID:     aws.String(in.ID),
		Status: types.ExpirationStatus(in.Status),
		Filter: filterToSDK(in.Filter),
	}
	if in.AbortIncompleteMultipartUpload != nil {
		rule.AbortIncompleteMultipartUpload = &types.AbortIncompleteMultipartUpload{
			DaysAfterInitiation: aws.Int32(in.AbortIncompleteMultipartUpload.DaysAfterInitiation),
		}
	}
	if in.Expiration != nil {
		rule.Expiration = &types.LifecycleExpiration{Date: in.Expiration.Date}
		if in.Expiration.Days > 0 {
			rule.Expiration.Days = aws.Int32(in.Expiration.Days)
		}
		if in.Expiration.ExpiredObjectDeleteMarker {
			rule.Expiration.ExpiredObjectDeleteMarker = aws.Bool(true)
		}
	}
	for _, t := range in.Transitions {
		transition := types.Transition{
			Date:         t.Date,
			StorageClass: types.TransitionStorageClass(t.StorageClass),
		}
		if t.Days > 0 {
			transition.Days = aws.Int32(t.Days)
		}
		rule.Transitions = append(rule.Transitions, transition)
	}
	if in.NoncurrentVersionExpiration != nil {
		rule.NoncurrentVersionExpiration = &types.NoncurrentVersionExpiration{
			NoncurrentDays: aws.Int32(in.NoncurrentVersionExpiration.NoncurrentDays),
		}
	}

	return rule
}

func filterToSDK(in Filter) types.LifecycleRuleFilter {
	switch {
	case len(in.Tags) == 0:
		// S3 expects an empty filter, never nil.
		return &types.LifecycleRuleFilterMemberPrefix{Value: in.Prefix}
	case len(in.Tags) == 1 && in.Prefix == "":
		return &types.LifecycleRuleFilterMemberTag{Value: types.Tag{
			Key:   aws.String(in.Tags[0].Key),
			Value: aws.String(in.Tags[0].Value),
		}}
	}

	and := types.LifecycleRuleAndOperator{}
	if in.Prefix != "" {
		and.Prefix = aws.String(in.Prefix)
	}
	for _, t := range in.Tags {
		and.Tags = append(and.Tags, types.Tag{Key: aws.String(t.Key), Value: aws.String(t.Value)})
	}

	return &types.LifecycleRuleFilterMemberAnd{Value: and}
}
