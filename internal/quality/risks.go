package quality

import (
	"fmt"
	"strings"

	"github.com/noah-isme/academic-quality-api/internal/models"
)

// RiskThresholds parameterises the risk rules.
type RiskThresholds struct {
	LowGPA         float64
	LowRetention   float64
	HighRatio      float64
	LowUtilization float64
}

// DefaultRiskThresholds returns the standard rule thresholds.
func DefaultRiskThresholds() RiskThresholds {
	return RiskThresholds{
		LowGPA:         2.8,
		LowRetention:   75,
		HighRatio:      25,
		LowUtilization: 50,
	}
}

type riskRule struct {
	kind           models.RiskType
	level          models.RiskLevel
	matches        func(r rates, th RiskThresholds) bool
	describe       func(n int, th RiskThresholds) string
	recommendation string
}

var riskRules = []riskRule{
	{
		kind:  models.RiskTypeAcademic,
		level: models.RiskHigh,
		matches: func(r rates, th RiskThresholds) bool {
			return r.avgGPA < th.LowGPA
		},
		describe: func(n int, th RiskThresholds) string {
			return fmt.Sprintf("%d department(s) with average GPA below %.2f", n, th.LowGPA)
		},
		recommendation: "Introduce tutoring and academic advising programs for struggling students",
	},
	{
		kind:  models.RiskTypeRetention,
		level: models.RiskMedium,
		matches: func(r rates, th RiskThresholds) bool {
			return r.retention < th.LowRetention
		},
		describe: func(n int, th RiskThresholds) string {
			return fmt.Sprintf("%d department(s) with retention rate below %.0f%%", n, th.LowRetention)
		},
		recommendation: "Strengthen student engagement and support services to reduce attrition",
	},
	{
		kind:  models.RiskTypeStaffing,
		level: models.RiskMedium,
		matches: func(r rates, th RiskThresholds) bool {
			return r.ratio > th.HighRatio
		},
		describe: func(n int, th RiskThresholds) string {
			return fmt.Sprintf("%d department(s) with student-teacher ratio above %.0f:1", n, th.HighRatio)
		},
		recommendation: "Recruit additional faculty or rebalance teaching loads",
	},
	{
		kind:  models.RiskTypeResource,
		level: models.RiskMedium,
		matches: func(r rates, th RiskThresholds) bool {
			return r.utilization < th.LowUtilization
		},
		describe: func(n int, th RiskThresholds) string {
			return fmt.Sprintf("%d department(s) with course utilization below %.0f%%", n, th.LowUtilization)
		},
		recommendation: "Consolidate under-enrolled course sections and review course offerings",
	},
}

// ComputeRiskAssessment evaluates the default risk rules.
func ComputeRiskAssessment(departments []models.DepartmentQuality) []models.RiskAssessment {
	return AssessRisks(departments, DefaultRiskThresholds())
}

// AssessRisks evaluates every rule independently. Each rule that matches at
// least one department yields a single entry listing all matching departments
// in input order. The result is empty, never nil, when nothing matches.
// The rules read the department fields as given. A department without courses
// has a utilization of 0 and therefore always carries the resource risk.
func AssessRisks(departments []models.DepartmentQuality, th RiskThresholds) []models.RiskAssessment {
	results := make([]departmentResult, len(departments))
	for i, d := range departments {
		results[i] = departmentResult{quality: d, raw: rates{
			avgGPA:      d.AvgGPA,
			avgRating:   d.AvgTeacherRating,
			ratio:       d.StudentTeacherRatio,
			retention:   d.RetentionRate,
			utilization: d.UtilizationRate,
		}}
	}
	return assessDepartments(results, th)
}

// assessDepartments applies the rules to unrounded averages.
func assessDepartments(results []departmentResult, th RiskThresholds) []models.RiskAssessment {
	out := make([]models.RiskAssessment, 0, len(riskRules))
	for _, rule := range riskRules {
		var matched []string
		for _, d := range results {
			if rule.matches(d.raw, th) {
				matched = append(matched, d.quality.Department)
			}
		}
		if len(matched) == 0 {
			continue
		}
		out = append(out, models.RiskAssessment{
			Type:           rule.kind,
			Level:          rule.level,
			Departments:    matched,
			Description:    rule.describe(len(matched), th) + ": " + strings.Join(matched, ", "),
			Recommendation: rule.recommendation,
		})
	}
	return out
}
