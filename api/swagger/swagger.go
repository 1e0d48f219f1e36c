package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Club Management API",
        "description": "Spreadsheet-backed club roster, attendance and assignment service",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Teacher access gate"},
        {"name": "Students", "description": "Club roster"},
        {"name": "Attendance", "description": "Per-day attendance sheets"},
        {"name": "Grades", "description": "Attendance-based evaluation"},
        {"name": "Announcements", "description": "Club announcement feed"},
        {"name": "Assignments", "description": "Assignments, submissions and evaluation"},
        {"name": "System", "description": "Operational endpoints"}
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": ["System"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "tags": ["System"],
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Waiting for first snapshot"}
                }
            }
        },
        "/auth/teacher": {
            "post": {
                "tags": ["Auth"],
                "summary": "Exchange the teacher access code for a token",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TeacherLoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid access code"}
                }
            }
        },
        "/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List students",
                "parameters": [
                    {"name": "level", "in": "query", "type": "string"},
                    {"name": "room", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Students"],
                "summary": "Register a student",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterStudentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Duplicate student id"}
                }
            }
        },
        "/students/{id}": {
            "get": {
                "tags": ["Students"],
                "summary": "Get student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "put": {
                "tags": ["Students"],
                "summary": "Update student",
                "security": [{"TeacherToken": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterStudentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Students"],
                "summary": "Remove student",
                "security": [{"TeacherToken": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/attendance/day-sheet": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Day sheet for a date",
                "security": [{"TeacherToken": []}],
                "parameters": [
                    {"name": "date", "in": "query", "required": true, "type": "string", "description": "YYYY-MM-DD"},
                    {"name": "level", "in": "query", "type": "string"},
                    {"name": "room", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Attendance"],
                "summary": "Record the whole day sheet",
                "security": [{"TeacherToken": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveDayRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/grades": {
            "get": {
                "tags": ["Grades"],
                "summary": "Roster-wide attendance summaries",
                "parameters": [
                    {"name": "level", "in": "query", "type": "string"},
                    {"name": "room", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/grades/{studentId}": {
            "get": {
                "tags": ["Grades"],
                "summary": "Attendance summary for one student",
                "parameters": [
                    {"name": "studentId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/reports/attendance": {
            "get": {
                "tags": ["Grades"],
                "summary": "Export the attendance report",
                "security": [{"TeacherToken": []}],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]},
                    {"name": "level", "in": "query", "type": "string"},
                    {"name": "room", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "File attachment"}
                }
            }
        },
        "/announcements": {
            "get": {
                "tags": ["Announcements"],
                "summary": "Public feed, pinned first, hidden excluded",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Announcements"],
                "summary": "Create or update an announcement",
                "security": [{"TeacherToken": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveAnnouncementRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "413": {"description": "Image too large"}
                }
            }
        },
        "/announcements/all": {
            "get": {
                "tags": ["Announcements"],
                "summary": "Full feed including hidden entries",
                "security": [{"TeacherToken": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/assignments": {
            "get": {
                "tags": ["Assignments"],
                "summary": "List assignments",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Assignments"],
                "summary": "Create or update an assignment",
                "security": [{"TeacherToken": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveAssignmentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/submissions": {
            "post": {
                "tags": ["Assignments"],
                "summary": "Submit work for an assignment",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitWorkRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "413": {"description": "Submission too large"}
                }
            }
        },
        "/submissions/status": {
            "get": {
                "tags": ["Assignments"],
                "summary": "Submission state for one student and assignment",
                "parameters": [
                    {"name": "assignmentId", "in": "query", "required": true, "type": "string"},
                    {"name": "studentId", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}/submissions": {
            "get": {
                "tags": ["Assignments"],
                "summary": "Submission states across all assignments",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/submissions/{id}/evaluation": {
            "post": {
                "tags": ["Assignments"],
                "summary": "Evaluate a submission",
                "security": [{"TeacherToken": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/EvaluateRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/snapshot/refresh": {
            "post": {
                "tags": ["System"],
                "summary": "Force a snapshot refresh from the sheet",
                "security": [{"TeacherToken": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Sheet unavailable"}
                }
            }
        },
        "/system/stats": {
            "get": {
                "tags": ["System"],
                "summary": "Aggregated operational metrics",
                "security": [{"TeacherToken": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/audit": {
            "get": {
                "tags": ["System"],
                "summary": "Mutation audit log",
                "security": [{"TeacherToken": []}],
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "securityDefinitions": {
        "TeacherToken": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "Bearer token issued by /auth/teacher"
        }
    },
    "definitions": {
        "TeacherLoginRequest": {
            "type": "object",
            "properties": {
                "code": {"type": "string"}
            },
            "required": ["code"]
        },
        "Student": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "description": "Five-digit student number"},
                "name": {"type": "string"},
                "level": {"type": "string", "enum": ["ม.4", "ม.5", "ม.6"]},
                "room": {"type": "integer", "minimum": 1, "maximum": 13}
            }
        },
        "RegisterStudentRequest": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "level": {"type": "string", "enum": ["ม.4", "ม.5", "ม.6"]},
                "room": {"type": "integer", "minimum": 1, "maximum": 13}
            },
            "required": ["id", "name", "level", "room"]
        },
        "SaveDayRequest": {
            "type": "object",
            "properties": {
                "date": {"type": "string", "description": "YYYY-MM-DD"},
                "entries": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/AttendanceEntry"}
                }
            },
            "required": ["date"]
        },
        "AttendanceEntry": {
            "type": "object",
            "properties": {
                "studentId": {"type": "string"},
                "status": {"type": "string", "enum": ["มา", "ขาด", "ลา", "กิจกรรม"]}
            }
        },
        "AttendanceTally": {
            "type": "object",
            "properties": {
                "present": {"type": "integer"},
                "absent": {"type": "integer"},
                "leave": {"type": "integer"},
                "activity": {"type": "integer"}
            }
        },
        "StudentSummary": {
            "type": "object",
            "properties": {
                "student": {"$ref": "#/definitions/Student"},
                "tally": {"$ref": "#/definitions/AttendanceTally"},
                "effective": {"type": "integer"},
                "percentage": {"type": "number"},
                "passed": {"type": "boolean"},
                "verdict": {"type": "string", "enum": ["ผ", "มผ"]}
            }
        },
        "SaveAnnouncementRequest": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "description": "Omit to create"},
                "title": {"type": "string"},
                "content": {"type": "string"},
                "imageUrl": {"type": "string"},
                "isPinned": {"type": "boolean"},
                "isHidden": {"type": "boolean"}
            },
            "required": ["title", "content"]
        },
        "SaveAssignmentRequest": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "description": "Omit to create"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "dueDate": {"type": "string"},
                "allowedTypes": {
                    "type": "array",
                    "items": {"type": "string", "enum": ["image", "link", "file"]}
                }
            },
            "required": ["title", "dueDate"]
        },
        "SubmitWorkRequest": {
            "type": "object",
            "properties": {
                "assignmentId": {"type": "string"},
                "studentId": {"type": "string"},
                "type": {"type": "string", "enum": ["image", "link", "file"]},
                "content": {"type": "string"}
            },
            "required": ["assignmentId", "studentId", "type", "content"]
        },
        "EvaluateRequest": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["ผ", "มผ"]}
            },
            "required": ["status"]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
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
