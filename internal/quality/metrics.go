package quality

import "github.com/noah-isme/academic-quality-api/internal/models"

// ComputeQualityMetrics derives the institution-wide quality metrics. Empty
// collections yield zero rates rather than errors.
func ComputeQualityMetrics(students []models.Student, teachers []models.Teacher, courses []models.Course) models.QualityMetrics {
	var acc accumulator
	for _, s := range students {
		acc.addStudent(s)
	}
	for _, t := range teachers {
		acc.addTeacher(t)
	}
	for _, c := range courses {
		acc.addCourse(c)
	}

	r := acc.rates()
	sc := r.scores()

	return models.QualityMetrics{
		Overall:      sc.overall,
		Academic:     sc.academic,
		Teaching:     sc.teaching,
		Operational:  sc.operational,
		Satisfaction: sc.satisfaction,

		AvgGPA:              roundTo(r.avgGPA, 2),
		AvgTeacherRating:    roundTo(r.avgRating, 2),
		StudentTeacherRatio: roundTo(r.ratio, 1),
		RetentionRate:       roundTo(r.retention, 1),
		UtilizationRate:     roundTo(r.utilization, 1),

		TotalStudents:  acc.students,
		ActiveStudents: acc.activeStudents,
		TotalTeachers:  acc.teachers,
		TotalCourses:   acc.courses,

		Grade:     GradeFor(sc.overall),
		RiskLevel: RiskLevelFor(sc.overall),
	}
}
