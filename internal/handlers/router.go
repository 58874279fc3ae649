package handlers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/nexskill/internal/auth"
	"github.com/justsurfingit/nexskill/internal/logger"
	"github.com/justsurfingit/nexskill/internal/ratelimit"
	"github.com/justsurfingit/nexskill/internal/services"
	"github.com/justsurfingit/nexskill/internal/storage"
)

// Deps are the collaborators the HTTP layer needs.
type Deps struct {
	Accounts     *services.AccountService
	Jobs         *services.JobService
	Applications *services.ApplicationService
	Extraction   *services.ExtractionService
	Analysis     *services.ResumeAnalysisService
	Resumes      *storage.ResumeStore
	Tokens       *auth.TokenIssuer
	LoginLimiter *ratelimit.Limiter

	CORSOrigins  []string
	RequireToken bool
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
}

// NewRouter wires every route under /api.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logger.Middleware())
	r.MaxMultipartMemory = d.Resumes.MaxBytes()

	corsConfig := cors.DefaultConfig()
	if len(d.CORSOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = d.CORSOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.ExposeHeaders = []string{"Content-Disposition"}
	r.Use(cors.New(corsConfig))

	callers := Callers{RequireToken: d.RequireToken}
	accounts := NewAccountHandler(d.Accounts)
	jobs := NewJobHandler(d.Jobs, d.Extraction, callers)
	applications := NewApplicationHandler(d.Applications, callers)
	resumes := NewResumeHandler(d.Resumes)
	analysis := NewAnalysisHandler(d.Analysis)

	loginLimit := func(c *gin.Context) { c.Next() }
	if d.LoginLimiter != nil {
		loginLimit = d.LoginLimiter.Middleware()
	}

	api := r.Group("/api", auth.Middleware(d.Tokens))
	{
		api.GET("/health", HealthCheck)

		// Accounts
		api.POST("/register-jobseeker", accounts.RegisterJobSeeker)
		api.POST("/login-jobseeker", loginLimit, accounts.LoginJobSeeker)
		api.PUT("/jobseeker/profile", accounts.UpsertJobSeekerProfile)
		api.POST("/register-recruiter", accounts.RegisterRecruiter)
		api.POST("/login-recruiter", loginLimit, accounts.LoginRecruiter)
		api.PUT("/recruiter/profile", accounts.UpdateRecruiterProfile)
		api.GET("/recruiter/:id", accounts.GetRecruiter)
		api.GET("/recruiter/email/:email", accounts.GetRecruiterByEmail)
		api.GET("/user/:id", accounts.GetJobSeeker)
		api.GET("/user/email/:email", accounts.GetJobSeekerByEmail)

		// Jobs
		api.POST("/jobs", jobs.CreateJob)
		api.GET("/jobs", jobs.ListJobs)
		api.POST("/jobs/extract", jobs.ExtractJob)
		api.GET("/jobs/:jobId", jobs.GetJob)
		api.PATCH("/jobs/:jobId", jobs.UpdateJob)
		api.PATCH("/jobs/:jobId/status", jobs.SetJobStatus)
		api.DELETE("/jobs/:jobId", jobs.DeleteJob)
		api.GET("/recruiter/:id/jobs", jobs.ListRecruiterJobs)

		// Applications
		api.POST("/apply", applications.Apply)
		api.GET("/applications", applications.ListApplications)
		api.PATCH("/applications/:applicationId/status", applications.UpdateApplicationStatus)
		api.GET("/jobs/:jobId/applications", applications.ListJobApplications)
		api.GET("/check-application/:jobId/:seekerEmail", applications.CheckApplication)
		api.GET("/recruiter/:id/applications", applications.ListRecruiterApplications)
		api.GET("/recruiter/email/:email/applications", applications.ListRecruiterApplications)

		api.GET("/resume/*filename", resumes.Download)
		api.POST("/analyze-resume", analysis.AnalyzeResume)
	}
	return r
}
