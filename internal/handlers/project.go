package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/fomenta-dev/fomenta/internal/apperr"
	"github.com/fomenta-dev/fomenta/internal/models"
	"github.com/fomenta-dev/fomenta/internal/services"
	"github.com/fomenta-dev/fomenta/internal/types"
	"github.com/fomenta-dev/fomenta/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type CreateProjectRequest struct {
	Name          string `json:"name" binding:"required"`
	OfficialTitle string `json:"official_title"`
	Segment       string `json:"segment"`
	ImageURL      string `json:"image_url"`
	Status        string `json:"status"`
	IsPublic      bool   `json:"is_public"`

	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`

	PrimaryResponsibleID *string `json:"primary_responsible_id"`
	LegalResponsibleID   *string `json:"legal_responsible_id"`

	BudgetPlanned float64 `json:"budget_planned"`

	Summary                string `json:"summary"`
	GeneralObjectives      string `json:"general_objectives"`
	Goals                  string `json:"goals"`
	Presentation           string `json:"presentation"`
	History                string `json:"history"`
	Remarks                string `json:"remarks"`
	ProposalDescription    string `json:"proposal_description"`
	CounterpartDescription string `json:"counterpart_description"`
	Justification          string `json:"justification"`

	ScheduleActivities []models.ScheduleActivity `json:"schedule_activities"`
	Attachments        []models.Attachment       `json:"attachments"`
	Team               []models.TeamMember       `json:"team"`
	ExecutionAreas     []string                  `json:"execution_areas"`
}

type UpdateProjectRequest struct {
	Name          *string `json:"name"`
	OfficialTitle *string `json:"official_title"`
	Segment       *string `json:"segment"`
	ImageURL      *string `json:"image_url"`
	Status        *string `json:"status"`
	IsPublic      *bool   `json:"is_public"`

	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`

	PrimaryResponsibleID *string `json:"primary_responsible_id"`
	LegalResponsibleID   *string `json:"legal_responsible_id"`

	BudgetPlanned *float64 `json:"budget_planned"`

	Summary                *string `json:"summary"`
	GeneralObjectives      *string `json:"general_objectives"`
	Goals                  *string `json:"goals"`
	Presentation           *string `json:"presentation"`
	History                *string `json:"history"`
	Remarks                *string `json:"remarks"`
	ProposalDescription    *string `json:"proposal_description"`
	CounterpartDescription *string `json:"counterpart_description"`
	Justification          *string `json:"justification"`

	// Omitting these fields leaves the stored lists untouched; an explicit
	// empty array clears them.
	ScheduleActivities *[]models.ScheduleActivity `json:"schedule_activities"`
	Attachments        *[]models.Attachment       `json:"attachments"`
	Team               *[]models.TeamMember       `json:"team"`
	ExecutionAreas     *[]string                  `json:"execution_areas"`
}

func CreateProject(ctx *gin.Context) {
	var req CreateProjectRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	current, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Project name is required"})
		return
	}

	status := req.Status
	if status == "" {
		status = types.StatusNew
	}

	if !types.ValidProjectStatus(status) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project status"})
		return
	}

	project := models.Project{
		Name:                   req.Name,
		OfficialTitle:          req.OfficialTitle,
		Segment:                req.Segment,
		ImageURL:               req.ImageURL,
		Status:                 status,
		IsPublic:               req.IsPublic,
		StartDate:              req.StartDate,
		EndDate:                req.EndDate,
		BudgetPlanned:          req.BudgetPlanned,
		Summary:                req.Summary,
		GeneralObjectives:      req.GeneralObjectives,
		Goals:                  req.Goals,
		Presentation:           req.Presentation,
		History:                req.History,
		Remarks:                req.Remarks,
		ProposalDescription:    req.ProposalDescription,
		CounterpartDescription: req.CounterpartDescription,
		Justification:          req.Justification,
		ScheduleActivities:     datatypes.NewJSONSlice(services.AssignActivityIDs(req.ScheduleActivities)),
		Attachments:            datatypes.NewJSONSlice(req.Attachments),
		Team:                   datatypes.NewJSONSlice(req.Team),
		ExecutionAreas:         datatypes.NewJSONSlice(req.ExecutionAreas),
	}

	switch current.Type {
	case models.UserTypeCompany:
		companyID := current.ID
		project.OwnerCompanyID = &companyID

		// A company may only name its own members as responsible users.
		for _, candidate := range []*string{req.PrimaryResponsibleID, req.LegalResponsibleID} {
			if candidate == nil {
				continue
			}
			member, err := membershipStore.IsMember(companyID, *candidate)
			if err != nil {
				respondError(ctx, err)
				return
			}
			if !member {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Responsible user is not a member of the company"})
				return
			}
		}

		project.PrimaryResponsibleID = req.PrimaryResponsibleID
		project.LegalResponsibleID = req.LegalResponsibleID
	default:
		creatorID := current.ID

		project.PrimaryResponsibleID = &creatorID
		project.LegalResponsibleID = &creatorID

		if req.PrimaryResponsibleID != nil {
			project.PrimaryResponsibleID = req.PrimaryResponsibleID
		}
		if req.LegalResponsibleID != nil {
			project.LegalResponsibleID = req.LegalResponsibleID
		}
	}

	if err := projectStore.Create(&project); err != nil {
		log.Printf("Failed to create project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	ctx.JSON(http.StatusCreated, project)
}

func ListProjects(ctx *gin.Context) {
	actor := actorFromContext(ctx)

	projects, err := projectStore.ListAll()

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve projects"})
		return
	}

	visible := make([]models.Project, 0, len(projects))

	for i := range projects {
		ok, err := policy.CanView(&projects[i], actor)
		if err != nil {
			respondError(ctx, err)
			return
		}
		if ok {
			visible = append(visible, projects[i])
		}
	}

	ctx.JSON(http.StatusOK, visible)
}

func GetProject(ctx *gin.Context) {
	project, ok := viewableProject(ctx)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, project)
}

func UpdateProject(ctx *gin.Context) {
	project, ok := editableProject(ctx)
	if !ok {
		return
	}

	var req UpdateProjectRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	updates := make(map[string]interface{})

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Project name is required"})
			return
		}
		updates["name"] = *req.Name
	}

	statusChanged := false
	if req.Status != nil && *req.Status != project.Status {
		if !types.ValidProjectStatus(*req.Status) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project status"})
			return
		}
		updates["status"] = *req.Status
		statusChanged = true
	}

	if err := applyResponsibleUpdates(ctx, project, &req, updates); err != nil {
		return
	}

	applyStringUpdates(&req, updates)

	if req.IsPublic != nil {
		updates["is_public"] = *req.IsPublic
	}
	if req.StartDate != nil {
		updates["start_date"] = *req.StartDate
	}
	if req.EndDate != nil {
		updates["end_date"] = *req.EndDate
	}
	if req.BudgetPlanned != nil {
		updates["budget_planned"] = *req.BudgetPlanned
	}

	if req.ScheduleActivities != nil {
		updates["schedule_activities"] = datatypes.NewJSONSlice(services.AssignActivityIDs(*req.ScheduleActivities))
	}
	if req.Attachments != nil {
		updates["attachments"] = datatypes.NewJSONSlice(*req.Attachments)
	}
	if req.Team != nil {
		updates["team"] = datatypes.NewJSONSlice(*req.Team)
	}
	if req.ExecutionAreas != nil {
		updates["execution_areas"] = datatypes.NewJSONSlice(*req.ExecutionAreas)
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	if err := projectStore.Update(project.ID, updates); err != nil {
		log.Printf("Failed to update project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project"})
		return
	}

	updated, err := projectStore.FindByID(project.ID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	if statusChanged {
		notifier.OnStatusChanged(updated)
	}

	ctx.JSON(http.StatusOK, updated)
}

func DeleteProject(ctx *gin.Context) {
	project, ok := editableProject(ctx)
	if !ok {
		return
	}

	if err := projectStore.Delete(project.ID); err != nil {
		log.Printf("Failed to delete project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

// AddAttachment uploads a file and appends it to the project's attachment
// list. The upload failing aborts the whole operation.
func AddAttachment(ctx *gin.Context) {
	project, ok := editableProject(ctx)
	if !ok {
		return
	}

	data, header, err := readUpload(ctx, "file")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	key := fileKey("projects/"+project.ID+"/attachments", header.Filename)

	url, err := blobs.Upload(ctx.Request.Context(), data, key, uploadContentType(header))
	if err != nil {
		respondError(ctx, err)
		return
	}

	attachments := append([]models.Attachment(project.Attachments), models.Attachment{
		Description: ctx.PostForm("description"),
		FileURL:     url,
	})

	err = projectStore.Update(project.ID, map[string]interface{}{
		"attachments": datatypes.NewJSONSlice(attachments),
	})
	if err != nil {
		log.Printf("Failed to store attachment: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store attachment"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"url": url})
}

// viewableProject fetches the project from the URL and enforces CanView.
// Denied or missing both surface as not found.
func viewableProject(ctx *gin.Context) (*models.Project, bool) {
	project, err := projectStore.FindByID(ctx.Param("id"))

	if err != nil {
		respondError(ctx, err)
		return nil, false
	}

	ok, err := policy.CanView(project, actorFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return nil, false
	}

	if !ok {
		respondError(ctx, apperr.NotFound("project"))
		return nil, false
	}

	return project, true
}

// editableProject is viewableProject's stricter sibling; public visibility
// never grants edit rights.
func editableProject(ctx *gin.Context) (*models.Project, bool) {
	project, err := projectStore.FindByID(ctx.Param("id"))

	if err != nil {
		respondError(ctx, err)
		return nil, false
	}

	ok, err := policy.CanEdit(project, actorFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return nil, false
	}

	if !ok {
		respondError(ctx, apperr.NotFound("project"))
		return nil, false
	}

	return project, true
}

func applyResponsibleUpdates(ctx *gin.Context, project *models.Project, req *UpdateProjectRequest, updates map[string]interface{}) error {
	current, err := utils.GetCurrentUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return err
	}

	assign := func(column string, candidate *string) error {
		if candidate == nil {
			return nil
		}

		if current.Type == models.UserTypeCompany && project.OwnerCompanyID != nil {
			member, err := membershipStore.IsMember(*project.OwnerCompanyID, *candidate)
			if err != nil {
				respondError(ctx, err)
				return err
			}
			if !member {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Responsible user is not a member of the company"})
				return apperr.Validation("responsible user not a member")
			}
		}

		updates[column] = *candidate
		return nil
	}

	if err := assign("primary_responsible_id", req.PrimaryResponsibleID); err != nil {
		return err
	}
	return assign("legal_responsible_id", req.LegalResponsibleID)
}

func applyStringUpdates(req *UpdateProjectRequest, updates map[string]interface{}) {
	fields := map[string]*string{
		"official_title":          req.OfficialTitle,
		"segment":                 req.Segment,
		"image_url":               req.ImageURL,
		"summary":                 req.Summary,
		"general_objectives":      req.GeneralObjectives,
		"goals":                   req.Goals,
		"presentation":            req.Presentation,
		"history":                 req.History,
		"remarks":                 req.Remarks,
		"proposal_description":    req.ProposalDescription,
		"counterpart_description": req.CounterpartDescription,
		"justification":           req.Justification,
	}

	for column, value := range fields {
		if value != nil {
			updates[column] = *value
		}
	}
}
