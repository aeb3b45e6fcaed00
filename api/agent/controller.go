package agentapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/beka-birhanu/vinom-qlearn/infrastruture/repo"
	"github.com/beka-birhanu/vinom-qlearn/maze"
	"github.com/beka-birhanu/vinom-qlearn/service"
	"github.com/beka-birhanu/vinom-qlearn/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AgentController serves the query routes publicly and the training routes to operators.
type AgentController struct {
	agent   i.Agent
	trainer i.Trainer
	runs    i.RunRepo
}

// NewAgentController initializes an AgentController.
func NewAgentController(agent i.Agent, trainer i.Trainer, runs i.RunRepo) (*AgentController, error) {
	if agent == nil || trainer == nil || runs == nil {
		return nil, errors.New("agent, trainer and run repo are required")
	}
	return &AgentController{
		agent:   agent,
		trainer: trainer,
		runs:    runs,
	}, nil
}

// RegisterPublic registers public routes.
func (ac *AgentController) RegisterPublic(route *gin.RouterGroup) {
	route.GET("/maze", ac.mazeLayout)
	route.GET("/maze/walls/:row/:col", ac.isWall)
	route.GET("/qvalues/:row/:col/:action", ac.qValue)
	route.GET("/policy/:row/:col", ac.policy)
	route.GET("/training", ac.trainingInfo)
	route.GET("/trained", ac.isTrained)
	route.GET("/qtable", ac.table)
	route.GET("/path", ac.path)
}

// RegisterProtected registers protected routes.
func (ac *AgentController) RegisterProtected(route *gin.RouterGroup) {
	route.POST("/train", ac.train)

	runs := route.Group("/runs")
	{
		runs.GET("", ac.latestRuns)
		runs.GET("/:ID", ac.run)
	}
}

func (ac *AgentController) mazeLayout(ctx *gin.Context) {
	cfg := ac.agent.MazeConfig()
	walls := make([][]bool, cfg.Rows)
	for row := range walls {
		walls[row] = make([]bool, cfg.Cols)
		for col := range walls[row] {
			walls[row][col] = ac.agent.IsWall(row, col)
		}
	}

	layout, err := ac.agent.Render(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while rendering maze"})
		return
	}

	ctx.JSON(http.StatusOK, &MazeResponse{Config: cfg, Walls: walls, Layout: layout})
}

func (ac *AgentController) isWall(ctx *gin.Context) {
	coords, ok := intParams(ctx, "row", "col")
	if !ok {
		return
	}
	pos := clampPosition(ac.agent.MazeConfig(), coords[0], coords[1])
	ctx.JSON(http.StatusOK, &WallResponse{Row: pos.Row, Col: pos.Col, Wall: ac.agent.IsWall(pos.Row, pos.Col)})
}

func (ac *AgentController) qValue(ctx *gin.Context) {
	p, ok := intParams(ctx, "row", "col", "action")
	if !ok {
		return
	}
	v, err := ac.agent.QValue(ctx.Request.Context(), p[0], p[1], p[2])
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while reading q-value"})
		return
	}

	pos := clampPosition(ac.agent.MazeConfig(), p[0], p[1])
	ctx.JSON(http.StatusOK, &QValueResponse{
		Row:    pos.Row,
		Col:    pos.Col,
		Action: maze.ClampAction(p[2]),
		Value:  v,
		Scale:  maze.Scale,
	})
}

func (ac *AgentController) policy(ctx *gin.Context) {
	p, ok := intParams(ctx, "row", "col")
	if !ok {
		return
	}
	a, err := ac.agent.Policy(ctx.Request.Context(), p[0], p[1])
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while reading policy"})
		return
	}

	pos := clampPosition(ac.agent.MazeConfig(), p[0], p[1])
	ctx.JSON(http.StatusOK, &PolicyResponse{Row: pos.Row, Col: pos.Col, Action: a, Name: a.String(), Symbol: a.Symbol()})
}

func (ac *AgentController) trainingInfo(ctx *gin.Context) {
	info, err := ac.agent.TrainingInfo(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while reading training info"})
		return
	}
	ctx.JSON(http.StatusOK, info)
}

func (ac *AgentController) isTrained(ctx *gin.Context) {
	trained, err := ac.agent.IsTrained(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while reading training info"})
		return
	}
	ctx.JSON(http.StatusOK, &TrainedResponse{Trained: trained})
}

func (ac *AgentController) table(ctx *gin.Context) {
	snap, err := ac.agent.Table(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while reading q-table"})
		return
	}
	ctx.JSON(http.StatusOK, snap)
}

func (ac *AgentController) path(ctx *gin.Context) {
	path, err := ac.agent.Path(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while following policy"})
		return
	}
	ctx.JSON(http.StatusOK, path)
}

// train runs a training call. An empty body trains with the defaults.
func (ac *AgentController) train(ctx *gin.Context) {
	var request TrainRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	run, err := ac.trainer.Train(ctx.Request.Context(), request.Params())
	if errors.Is(err, service.ErrTrainingInProgress) {
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while training"})
		return
	}

	ctx.JSON(http.StatusOK, run)
}

func (ac *AgentController) latestRuns(ctx *gin.Context) {
	limit := defaultRunsLimit
	if raw := ctx.Query("limit"); raw != "" {
		l, err := strconv.Atoi(raw)
		if err != nil || l <= 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = l
	}

	runs, err := ac.runs.Latest(limit)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while listing runs"})
		return
	}
	ctx.JSON(http.StatusOK, runs)
}

func (ac *AgentController) run(ctx *gin.Context) {
	ID, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid run id"})
		return
	}

	run, err := ac.runs.ByID(ID)
	if errors.Is(err, repo.ErrRunNotFound) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while reading run"})
		return
	}
	ctx.JSON(http.StatusOK, run)
}

// intParams parses the named path parameters. Values beyond the int range
// saturate, anything non-numeric answers 400.
func intParams(ctx *gin.Context, names ...string) ([]int, bool) {
	values := make([]int, len(names))
	for n, name := range names {
		v, err := strconv.Atoi(ctx.Param(name))
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": name + " must be an integer"})
			return nil, false
		}
		values[n] = v
	}
	return values, true
}

func clampPosition(cfg maze.Config, row, col int) maze.CellPosition {
	return maze.CellPosition{
		Row: max(0, min(row, cfg.Rows-1)),
		Col: max(0, min(col, cfg.Cols-1)),
	}
}
