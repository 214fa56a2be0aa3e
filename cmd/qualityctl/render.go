package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/noah-isme/academic-quality-api/internal/models"
)

var (
	lowRisk    = color.New(color.FgGreen).SprintFunc()
	mediumRisk = color.New(color.FgYellow).SprintFunc()
	highRisk   = color.New(color.FgRed, color.Bold).SprintFunc()
	heading    = color.New(color.Bold).SprintFunc()
)

func colorRisk(level models.RiskLevel) string {
	switch level {
	case models.RiskLow:
		return lowRisk(string(level))
	case models.RiskMedium:
		return mediumRisk(string(level))
	case models.RiskHigh:
		return highRisk(string(level))
	default:
		return string(level)
	}
}

func printMetrics(w io.Writer, m models.QualityMetrics, meta map[string]interface{}) {
	fmt.Fprintf(w, "%s %d (%s, risk %s)\n", heading("Overall quality:"), m.Overall, m.Grade, colorRisk(m.RiskLevel))
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "  academic\t%d\tavg gpa\t%.2f\n", m.Academic, m.AvgGPA)
	fmt.Fprintf(tw, "  teaching\t%d\tstudent/teacher\t%.1f\n", m.Teaching, m.StudentTeacherRatio)
	fmt.Fprintf(tw, "  operational\t%d\tutilization\t%.1f%%\n", m.Operational, m.UtilizationRate)
	fmt.Fprintf(tw, "  satisfaction\t%d\tretention\t%.1f%%\n", m.Satisfaction, m.RetentionRate)
	_ = tw.Flush()
	fmt.Fprintf(w, "  %d students (%d active), %d teachers, %d courses\n",
		m.TotalStudents, m.ActiveStudents, m.TotalTeachers, m.TotalCourses)
	if v, ok := meta["dataset_version"]; ok {
		fmt.Fprintf(w, "  dataset v%v, cache hit %v\n", v, meta["cache_hit"])
	}
}

func printDepartments(w io.Writer, departments []models.DepartmentQuality) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	// Risk goes last: color escapes would skew tabwriter widths.
	fmt.Fprintln(tw, "DEPARTMENT\tSCORE\tGRADE\tSTUDENTS\tTEACHERS\tCOURSES\tRISK")
	for _, d := range departments {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%d\t%d\t%d\t%s\n",
			d.Department, d.QualityScore, d.QualityGrade, d.StudentCount, d.TeacherCount, d.CourseCount, colorRisk(d.RiskLevel))
	}
	_ = tw.Flush()
}

func printRisks(w io.Writer, risks []models.RiskAssessment) {
	if len(risks) == 0 {
		fmt.Fprintln(w, "No risks triggered.")
		return
	}
	for _, r := range risks {
		fmt.Fprintf(w, "[%s] %s: %s\n", colorRisk(r.Level), r.Type, r.Description)
		fmt.Fprintf(w, "    departments: %s\n", strings.Join(r.Departments, ", "))
		fmt.Fprintf(w, "    recommendation: %s\n", r.Recommendation)
	}
}

func printJob(w io.Writer, job *models.ETLJob) {
	fmt.Fprintf(w, "job %s (%s) %s, attempts %d\n", job.ID, job.Type, job.Status, job.Attempts)
	if job.Summary != nil {
		fmt.Fprintf(w, "  loaded %d students, %d teachers, %d courses (dataset v%d)\n",
			job.Summary.Students, job.Summary.Teachers, job.Summary.Courses, job.Summary.DatasetVersion)
	}
	if job.ErrorMessage != nil {
		fmt.Fprintf(w, "  error: %s\n", *job.ErrorMessage)
	}
}
