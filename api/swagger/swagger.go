package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Academic Quality API",
        "description": "Institutional quality analytics over students, teachers and courses.",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": ["http"],
    "securityDefinitions": {"BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}},
    "tags": [
        {"name": "Auth", "description": "Sessions and token rotation"},
        {"name": "Students", "description": "Student records"},
        {"name": "Teachers", "description": "Teacher records"},
        {"name": "Courses", "description": "Courses and enrollment"},
        {"name": "Analytics", "description": "Quality metrics, risks and trends"},
        {"name": "ETL", "description": "Dataset reloads and report exports"}
    ],
    "paths": {
        "/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List students",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "401": {"description": "Unauthorized"}
                },
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "sort", "in": "query", "type": "string"},
                    {"name": "order", "in": "query", "type": "string", "enum": ["asc", "desc"]},
                    {"name": "department", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string"}
                ],
                "security": [{"BearerAuth": []}]
            },
            "post": {
                "tags": ["Students"],
                "summary": "Create student",
                "produces": ["application/json"],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Envelope"}},
                    "401": {"description": "Unauthorized"}
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/CreateStudentRequest"}
                    }
                ],
                "security": [{"BearerAuth": []}]
            }
        },
        "/students/bulk": {
            "patch": {
                "tags": ["Students"],
                "summary": "Bulk update students",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "401": {"description": "Unauthorized"}
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/BulkUpdateStudentsRequest"}
                    }
                ],
                "security": [{"BearerAuth": []}]
            }
        },
        "/students/bulk-delete": {
            "post": {
                "tags": ["Students"],
                "summary": "Bulk delete students",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "401": {"description": "Unauthorized"}
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/BulkDeleteRequest"}
                    }
                ],
                "security": [{"BearerAuth": []}]
            }
        },
        "/students/{id}": {
            "get": {
                "tags": ["Students"],
                "summary": "Get student",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "401": {"description": "Unauthorized"}
                },
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "security": [{"BearerAuth": []}]
            },
            "patch": {
                "tags": ["Students"],
                "summary": "Update student",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "401": {"description": "Unauthorized"}
                },
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/UpdateStudentRequest"}
                    }
                ],
                "security": [{"BearerAuth": []}]
            },
            "delete": {
                "tags": ["Students"],
                "summary": "Delete student",
                "produces": ["application/json"],
                "responses": {"204": {"description": "No Content"}, "401": {"description": "Unauthorized"}},
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "security": [{"BearerAuth": []}]
            }
        },
        "/teachers": {
            "get": {
                "tags": ["Teachers"],
                "summary": "List teachers",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "401": {"description": "Unauthorized"}
                },
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "sort", "in": "query", "type": "string"},
                    {"name": "order", "in": "query", "type": "string", "enum": ["asc", "desc"]},
                    {"name": "department", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string"}
                ],
                "security": [{"BearerAuth": []}]
            },
            "post": {
                "tags": ["Teachers"],
                "summary": "Create teacher",
                "produces": ["application/json"],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Envelope"}},
                    "401": {"description": "Unauthorized"}
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/CreateTeacherRequest"}
                    }
                ],
                "security": [{"BearerAuth": []}]
            }
        },
        "/teachers/bulk": {
            "patch": {
                "tags": ["Teachers"],
                "summary": "Bulk update teachers",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "401": {"description": "Unauthorized"}
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/BulkUpdateTeachersRequest"}
                    }
                ],
                "security": [{"BearerAuth": []}]
            }
        },
        "/teachers/bulk-delete": {
            "post": {
                "tags": ["Teachers"],
                "summary": "Bulk delete teachers",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "401": {"description": "Unauthorized"}
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/BulkDeleteRequest"}
                    }
                ],
                "security": [{"BearerAuth": []}]
            }
        },
        "/teachers/{id}": {
            "get": {
                "tags": ["Teachers"],
                "summary": "Get teacher",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "401": {"description": "Unauthorized"}
                },
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "security": [{"BearerAuth": []}]
            },
            "patch": {
                "tags": ["Teachers"],
                "summary": "Update teacher",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "401": {"description": "Unauthorized"}
                },
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/UpdateTeacherRequest"}
                    }
                ],
                "security": [{"BearerAuth": []}]
            },
            "delete": {
                "tags": ["Teachers"],
                "summary": "Delete teacher",
                "produces": ["application/json"],
                "responses": {"204": {"description": "No Content"}, "401": {"description": "Unauthorized"}},
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "security": [{"BearerAuth": []}]
            }
        },
        "/courses": {
            "get": {
                "tags": ["Courses"],
                "summary": "List courses",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "401": {"description": "Unauthorized"}
                },
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "sort", "in": "query", "type": "string"},
                    {"name": "order", "in": "query", "type": "string", "enum": ["asc", "desc"]},
                    {"name": "department", "in": "query", "type": "string"},
                    {"name": "teacherId", "in": "query", "type": "string"}
                ],
                "security": [{"BearerAuth": []}]
            },
            "post": {
                "tags": ["Courses"],
                "summary": "Create course",
                "produces": ["application/json"],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Envelope"}},
                    "401": {"description": "Unauthorized"}
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/CreateCourseRequest"}
                    }
                ],
                "security": [{"BearerAuth": []}]
            }
        },
        "/courses/bulk": {
            "patch": {
                "tags": ["Courses"],
                "summary": "Bulk update courses",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "401": {"description": "Unauthorized"}
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/BulkUpdateCoursesRequest"}
                    }
                ],
                "security": [{"BearerAuth": []}]
            }
        },
        "/courses/bulk-delete": {
            "post": {
                "tags": ["Courses"],
                "summary": "Bulk delete courses",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "401": {"description": "Unauthorized"}
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/BulkDeleteRequest"}
                    }
                ],
                "security": [{"BearerAuth": []}]
            }
        },
        "/courses/{id}": {
            "get": {
                "tags": ["Courses"],
                "summary": "Get course",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "401": {"description": "Unauthorized"}
                },
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "security": [{"BearerAuth": []}]
            },
            "patch": {
                "tags": ["Courses"],
                "summary": "Update course",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "401": {"description": "Unauthorized"}
                },
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/UpdateCourseRequest"}
                    }
                ],
                "security": [{"BearerAuth": []}]
            },
            "delete": {
                "tags": ["Courses"],
                "summary": "Delete course",
                "produces": ["application/json"],
                "responses": {"204": {"description": "No Content"}, "401": {"description": "Unauthorized"}},
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "security": [{"BearerAuth": []}]
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Login",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}},
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/LoginRequest"}
                    }
                ]
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["Auth"],
                "summary": "Rotate refresh token",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}},
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/RefreshTokenRequest"}
                    }
                ]
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Auth"],
                "summary": "Revoke refresh token",
                "produces": ["application/json"],
                "responses": {"204": {"description": "No Content"}, "401": {"description": "Unauthorized"}},
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/RefreshTokenRequest"}
                    }
                ],
                "security": [{"BearerAuth": []}]
            }
        },
        "/analytics/quality": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Integrated quality report",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "401": {"description": "Unauthorized"}
                },
                "security": [{"BearerAuth": []}]
            }
        },
        "/analytics/metrics": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Institution-wide quality metrics",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "401": {"description": "Unauthorized"}
                },
                "security": [{"BearerAuth": []}]
            }
        },
        "/analytics/departments": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Per-department quality",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "401": {"description": "Unauthorized"}
                },
                "parameters": [{"name": "department", "in": "query", "type": "string"}],
                "security": [{"BearerAuth": []}]
            }
        },
        "/analytics/risks": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Triggered risk rules",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "401": {"description": "Unauthorized"}
                },
                "parameters": [{"name": "level", "in": "query", "type": "string", "description": "Low, Medium or High"}],
                "security": [{"BearerAuth": []}]
            }
        },
        "/analytics/trends": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Six-month performance trend",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "401": {"description": "Unauthorized"}
                },
                "security": [{"BearerAuth": []}]
            }
        },
        "/analytics/distribution": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Student status distribution",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "401": {"description": "Unauthorized"}
                },
                "security": [{"BearerAuth": []}]
            }
        },
        "/analytics/validation": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Input validation issues",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "401": {"description": "Unauthorized"}
                },
                "security": [{"BearerAuth": []}]
            }
        },
        "/analytics/system": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Cache and request instrumentation",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "401": {"description": "Unauthorized"}
                },
                "security": [{"BearerAuth": []}]
            }
        },
        "/etl/sync": {
            "post": {
                "tags": ["ETL"],
                "summary": "Queue a dataset reload",
                "produces": ["application/json"],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/Envelope"}},
                    "401": {"description": "Unauthorized"}
                },
                "security": [{"BearerAuth": []}]
            }
        },
        "/etl/reports": {
            "post": {
                "tags": ["ETL"],
                "summary": "Queue a report export",
                "produces": ["application/json"],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/Envelope"}},
                    "401": {"description": "Unauthorized"}
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/ReportRequest"}
                    }
                ],
                "security": [{"BearerAuth": []}]
            }
        },
        "/etl/jobs/{id}": {
            "get": {
                "tags": ["ETL"],
                "summary": "Job status",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "401": {"description": "Unauthorized"}
                },
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "security": [{"BearerAuth": []}]
            }
        },
        "/etl/reports/download": {
            "get": {
                "tags": ["ETL"],
                "summary": "Download an exported report",
                "produces": ["text/csv", "application/pdf"],
                "responses": {"200": {"description": "File"}},
                "parameters": [{"name": "token", "in": "query", "required": true, "type": "string"}]
            }
        }
    },
    "definitions": {
        "Envelope": {
            "type": "object",
            "properties": {
                "statusCode": {"type": "integer"},
                "message": {"type": "string"},
                "data": {"type": "object"},
                "metadata": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "details": {"type": "object"}
            }
        },
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "RefreshTokenRequest": {"type": "object", "required": ["refresh_token"], "properties": {"refresh_token": {"type": "string"}}},
        "ReportRequest": {
            "type": "object",
            "required": ["format"],
            "properties": {"format": {"type": "string", "enum": ["csv", "pdf"]}}
        },
        "BulkDeleteRequest": {
            "type": "object",
            "required": ["ids"],
            "properties": {"ids": {"type": "array", "items": {"type": "string"}}}
        },
        "CreateStudentRequest": {
            "type": "object",
            "required": ["student_number", "full_name", "department"],
            "properties": {
                "student_number": {"type": "string"},
                "full_name": {"type": "string"},
                "email": {"type": "string"},
                "department": {"type": "string"},
                "status": {
                    "type": "string",
                    "enum": ["active", "graduated", "on-leave", "dropped-out", "currently-working"]
                },
                "gpa": {"type": "number", "minimum": 0, "maximum": 4},
                "enrollment_year": {"type": "integer"}
            }
        },
        "CreateTeacherRequest": {
            "type": "object",
            "required": ["employee_number", "full_name", "department"],
            "properties": {
                "employee_number": {"type": "string"},
                "full_name": {"type": "string"},
                "email": {"type": "string"},
                "department": {"type": "string"},
                "status": {"type": "string", "enum": ["active", "on-leave", "retired", "resigned"]},
                "overall_rating": {"type": "number", "minimum": 0, "maximum": 5}
            }
        },
        "CreateCourseRequest": {
            "type": "object",
            "required": ["code", "name", "department", "max_capacity"],
            "properties": {
                "code": {"type": "string"},
                "name": {"type": "string"},
                "department": {"type": "string"},
                "teacher_id": {"type": "string"},
                "credits": {"type": "integer"},
                "enrolled_students": {"type": "array", "items": {"type": "string"}},
                "max_capacity": {"type": "integer", "minimum": 1}
            }
        },
        "UpdateStudentRequest": {
            "type": "object",
            "properties": {
                "student_number": {"type": "string"},
                "full_name": {"type": "string"},
                "email": {"type": "string"},
                "department": {"type": "string"},
                "status": {
                    "type": "string",
                    "enum": ["active", "graduated", "on-leave", "dropped-out", "currently-working"]
                },
                "gpa": {"type": "number", "minimum": 0, "maximum": 4},
                "enrollment_year": {"type": "integer"}
            }
        },
        "UpdateTeacherRequest": {
            "type": "object",
            "properties": {
                "employee_number": {"type": "string"},
                "full_name": {"type": "string"},
                "email": {"type": "string"},
                "department": {"type": "string"},
                "status": {"type": "string", "enum": ["active", "on-leave", "retired", "resigned"]},
                "overall_rating": {"type": "number", "minimum": 0, "maximum": 5},
                "clear_rating": {"type": "boolean"}
            }
        },
        "UpdateCourseRequest": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "name": {"type": "string"},
                "department": {"type": "string"},
                "teacher_id": {"type": "string"},
                "credits": {"type": "integer"},
                "enrolled_students": {"type": "array", "items": {"type": "string"}},
                "max_capacity": {"type": "integer", "minimum": 1},
                "clear_teacher": {"type": "boolean"}
            }
        },
        "BulkUpdateStudentsRequest": {
            "type": "object",
            "required": ["ids"],
            "properties": {
                "ids": {"type": "array", "items": {"type": "string"}},
                "status": {"type": "string"},
                "department": {"type": "string"}
            }
        },
        "BulkUpdateTeachersRequest": {
            "type": "object",
            "required": ["ids"],
            "properties": {
                "ids": {"type": "array", "items": {"type": "string"}},
                "status": {"type": "string"},
                "department": {"type": "string"}
            }
        },
        "BulkUpdateCoursesRequest": {
            "type": "object",
            "required": ["ids"],
            "properties": {
                "ids": {"type": "array", "items": {"type": "string"}},
                "department": {"type": "string"},
                "teacher_id": {"type": "string"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
