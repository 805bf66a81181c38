package pipeline

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidSample = errors.New("invalid sample")

// ValidationRule 校验规则
type ValidationRule interface {
	Check(Sample) error
	Name() string
}

// DataCleaner 数据校验器
type DataCleaner struct {
	rules []ValidationRule
}

// NewDataCleaner 创建带默认规则的校验器
func NewDataCleaner() *DataCleaner {
	cleaner := &DataCleaner{rules: make([]ValidationRule, 0)}
	cleaner.AddRule(FiniteRule{})
	cleaner.AddRule(NonNegativeRule{})
	return cleaner
}

// AddRule 添加校验规则
func (dc *DataCleaner) AddRule(rule ValidationRule) {
	dc.rules = append(dc.rules, rule)
}

// Rules 返回规则名称
func (dc *DataCleaner) Rules() []string {
	names := make([]string, len(dc.rules))
	for i, rule := range dc.rules {
		names[i] = rule.Name()
	}
	return names
}

// Validate 校验数据集, 遇到第一条不合法记录即返回错误
func (dc *DataCleaner) Validate(ds *DataSet) error {
	if ds == nil || len(ds.Samples) == 0 {
		return ErrEmptyFile
	}
	for i, sample := range ds.Samples {
		for _, rule := range dc.rules {
			if err := rule.Check(sample); err != nil {
				// +2: 表头占一行, 行号从 1 开始
				return fmt.Errorf("line %d: %s: %w: %v", i+2, rule.Name(), ErrInvalidSample, err)
			}
		}
	}
	return nil
}

// ============ 校验规则实现 ============

// FiniteRule 拒绝 NaN 与 Inf
type FiniteRule struct{}

func (FiniteRule) Name() string {
	return "finite_validation"
}

func (FiniteRule) Check(s Sample) error {
	for _, v := range []float64{s.Mileage, s.Price} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("value %v is not finite", v)
		}
	}
	return nil
}

// NonNegativeRule 里程与价格不能为负
type NonNegativeRule struct{}

func (NonNegativeRule) Name() string {
	return "non_negative_validation"
}

func (NonNegativeRule) Check(s Sample) error {
	if s.Mileage < 0 {
		return fmt.Errorf("mileage %.2f is negative", s.Mileage)
	}
	if s.Price < 0 {
		return fmt.Errorf("price %.2f is negative", s.Price)
	}
	return nil
}
