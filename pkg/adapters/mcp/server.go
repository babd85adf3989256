package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Chinh13571113/careermate-web-sub001/pkg/domain"
	"github.com/Chinh13571113/careermate-web-sub001/pkg/engine"
	"github.com/Chinh13571113/careermate-web-sub001/pkg/ports"
)

// SessionEnvelope is the unified tool result: the session plus, when the
// session is still ongoing, its pending question.
type SessionEnvelope struct {
	Session *domain.Session `json:"session" jsonschema_description:"The interview session"`
	Pending *domain.Turn    `json:"pending,omitempty" jsonschema_description:"The pending question, if the session is ongoing"`
	Plan    *engine.Plan    `json:"plan,omitempty" jsonschema_description:"Resumption plan, for resume_interview"`
}

// Engine defines the interface required by the MCP server.
type Engine interface {
	Start(ctx context.Context, ownerID, jobDescription string) (*domain.Session, *domain.Turn, error)
	SubmitAnswer(ctx context.Context, sessionID string, questionNumber int, answer string) (*domain.Session, *domain.Turn, error)
	Finalize(ctx context.Context, sessionID string) (*domain.Session, error)
	Resume(ctx context.Context, sessionID string) (*domain.Session, *engine.Plan, error)
	List(ctx context.Context, filter ports.ListFilter) ([]*domain.Session, error)
}

// Server wraps the session engine and exposes it as an MCP Server, so
// agent hosts can drive rehearsals as tools.
type Server struct {
	engine    Engine
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(eng Engine, version string) *Server {
	s := &Server{
		engine:    eng,
		mcpServer: server.NewMCPServer("careermate-interview", version),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	startTool := mcp.NewTool("start_interview",
		mcp.WithDescription("Start a new mock interview session for a job description. Returns the session and the first question."),
		mcp.WithString("job_description", mcp.Required(), mcp.Description("The job posting to rehearse for")),
		mcp.WithString("owner_id", mcp.Description("Candidate identifier (optional)")),
		mcp.WithOutputSchema[SessionEnvelope](),
	)
	s.mcpServer.AddTool(startTool, mcp.NewStructuredToolHandler(s.handleStart))

	answerTool := mcp.NewTool("submit_answer",
		mcp.WithDescription("Submit the answer to the pending question. Returns the scored session and the next question, or the completed session."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithNumber("question_number", mcp.Required(), mcp.Description("Number of the pending question being answered")),
		mcp.WithString("answer", mcp.Required(), mcp.Description("The candidate's answer text")),
		mcp.WithOutputSchema[SessionEnvelope](),
	)
	s.mcpServer.AddTool(answerTool, mcp.NewStructuredToolHandler(s.handleSubmitAnswer))

	resumeTool := mcp.NewTool("resume_interview",
		mcp.WithDescription("Resume a stored session: replays the transcript and returns the next action (pending question or final summary)."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithOutputSchema[SessionEnvelope](),
	)
	s.mcpServer.AddTool(resumeTool, mcp.NewStructuredToolHandler(s.handleResume))

	finalizeTool := mcp.NewTool("finalize_interview",
		mcp.WithDescription("Finalize a fully scored session, attaching the report and average score. Idempotent."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithOutputSchema[SessionEnvelope](),
	)
	s.mcpServer.AddTool(finalizeTool, mcp.NewStructuredToolHandler(s.handleFinalize))

	s.mcpServer.AddTool(mcp.NewTool("list_interviews",
		mcp.WithDescription("List stored interview sessions, optionally filtered by owner and status."),
		mcp.WithString("owner_id", mcp.Description("Filter by candidate identifier")),
		mcp.WithString("status", mcp.Description("Filter by lifecycle status: ongoing or completed")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ownerID := request.GetString("owner_id", "")
		status := request.GetString("status", "")
		sessions, err := s.engine.List(ctx, ports.ListFilter{
			OwnerID: ownerID,
			Status:  domain.Status(status),
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(sessions)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

// Handler methods for structured tools

func (s *Server) handleStart(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SessionEnvelope, error) {
	jobDescription, _ := args["job_description"].(string)
	ownerID, _ := args["owner_id"].(string)

	session, pending, err := s.engine.Start(ctx, ownerID, jobDescription)
	if err != nil {
		return SessionEnvelope{}, fmt.Errorf("start failed: %w", err)
	}
	return SessionEnvelope{Session: session, Pending: pending}, nil
}

func (s *Server) handleSubmitAnswer(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SessionEnvelope, error) {
	sessionID, _ := args["session_id"].(string)
	answer, _ := args["answer"].(string)
	questionNumber := 0
	if n, ok := args["question_number"].(float64); ok {
		questionNumber = int(n)
	}

	session, next, err := s.engine.SubmitAnswer(ctx, sessionID, questionNumber, answer)
	if err != nil {
		return SessionEnvelope{}, fmt.Errorf("submit failed: %w", err)
	}
	return SessionEnvelope{Session: session, Pending: next}, nil
}

func (s *Server) handleResume(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SessionEnvelope, error) {
	sessionID, _ := args["session_id"].(string)

	session, plan, err := s.engine.Resume(ctx, sessionID)
	if err != nil {
		return SessionEnvelope{}, fmt.Errorf("resume failed: %w", err)
	}
	return SessionEnvelope{Session: session, Pending: plan.Pending, Plan: plan}, nil
}

func (s *Server) handleFinalize(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SessionEnvelope, error) {
	sessionID, _ := args["session_id"].(string)

	session, err := s.engine.Finalize(ctx, sessionID)
	if err != nil {
		return SessionEnvelope{}, fmt.Errorf("finalize failed: %w", err)
	}
	return SessionEnvelope{Session: session}, nil
}
