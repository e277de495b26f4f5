package devserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"shelterhub/internal/idgen"
	"shelterhub/internal/shelterapi"
)

func notFound(c *gin.Context, what string) {
	c.JSON(http.StatusNotFound, gin.H{
		"error": what + " not found",
		"code":  "NOT_FOUND",
	})
}

func badBody(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error": "Invalid request body",
		"code":  "INVALID_BODY",
	})
}

// --- animals ---

func (s *Server) handleListAnimals(c *gin.Context) {
	species := c.Query("species")
	status := c.Query("status")
	kennelID := c.Query("kennel_id")

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	animals := make([]shelterapi.Animal, 0)
	for _, animal := range sortedByID(s.store.animals) {
		if species != "" && animal.Species != species {
			continue
		}
		if status != "" && animal.Status != status {
			continue
		}
		if kennelID != "" && animal.KennelID != kennelID {
			continue
		}
		animals = append(animals, animal)
	}

	c.JSON(http.StatusOK, animals)
}

func (s *Server) handleGetAnimal(c *gin.Context) {
	s.store.mu.RLock()
	animal, ok := s.store.animals[c.Param("id")]
	s.store.mu.RUnlock()

	if !ok {
		notFound(c, "animal")
		return
	}
	c.JSON(http.StatusOK, animal)
}

func (s *Server) handleCreateAnimal(c *gin.Context) {
	var req shelterapi.CreateAnimalRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.Species == "" {
		badBody(c)
		return
	}

	now := time.Now().UTC()
	animal := shelterapi.Animal{
		ID:          idgen.NewAnimal(),
		Name:        req.Name,
		Species:     req.Species,
		Breed:       req.Breed,
		Sex:         req.Sex,
		BirthDate:   req.BirthDate,
		WeightKg:    req.WeightKg,
		Status:      shelterapi.AnimalStatusIntake,
		KennelID:    req.KennelID,
		ChipNumber:  req.ChipNumber,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.store.mu.Lock()
	s.store.animals[animal.ID] = animal
	s.store.mu.Unlock()

	c.JSON(http.StatusCreated, animal)
}

func (s *Server) handleUpdateAnimal(c *gin.Context) {
	var req shelterapi.UpdateAnimalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	animal, ok := s.store.animals[c.Param("id")]
	if !ok {
		notFound(c, "animal")
		return
	}

	if req.Name != nil {
		animal.Name = *req.Name
	}
	if req.Status != nil {
		animal.Status = *req.Status
	}
	if req.WeightKg != nil {
		animal.WeightKg = *req.WeightKg
	}
	if req.KennelID != nil {
		animal.KennelID = *req.KennelID
	}
	if req.Description != nil {
		animal.Description = *req.Description
	}
	if req.BirthDate != nil {
		animal.BirthDate = req.BirthDate
	}
	animal.UpdatedAt = time.Now().UTC()

	s.store.animals[animal.ID] = animal
	c.JSON(http.StatusOK, animal)
}

func (s *Server) handleDeleteAnimal(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	id := c.Param("id")
	if _, ok := s.store.animals[id]; !ok {
		notFound(c, "animal")
		return
	}
	delete(s.store.animals, id)
	c.Status(http.StatusNoContent)
}

// --- kennels ---

func (s *Server) handleListKennels(c *gin.Context) {
	s.store.mu.RLock()
	kennels := sortedByID(s.store.kennels)
	s.store.mu.RUnlock()

	c.JSON(http.StatusOK, kennels)
}

func (s *Server) handleGetKennel(c *gin.Context) {
	s.store.mu.RLock()
	kennel, ok := s.store.kennels[c.Param("id")]
	s.store.mu.RUnlock()

	if !ok {
		notFound(c, "kennel")
		return
	}
	c.JSON(http.StatusOK, kennel)
}

func (s *Server) handleCreateKennel(c *gin.Context) {
	var req shelterapi.CreateKennelRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		badBody(c)
		return
	}

	now := time.Now().UTC()
	kennel := shelterapi.Kennel{
		ID:        idgen.NewKennel(),
		Name:      req.Name,
		Zone:      req.Zone,
		Capacity:  req.Capacity,
		Notes:     req.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.store.mu.Lock()
	s.store.kennels[kennel.ID] = kennel
	s.store.mu.Unlock()

	c.JSON(http.StatusCreated, kennel)
}

func (s *Server) handleUpdateKennel(c *gin.Context) {
	var req shelterapi.UpdateKennelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	kennel, ok := s.store.kennels[c.Param("id")]
	if !ok {
		notFound(c, "kennel")
		return
	}

	if req.Name != nil {
		kennel.Name = *req.Name
	}
	if req.Zone != nil {
		kennel.Zone = *req.Zone
	}
	if req.Capacity != nil {
		kennel.Capacity = *req.Capacity
	}
	if req.Notes != nil {
		kennel.Notes = *req.Notes
	}
	kennel.UpdatedAt = time.Now().UTC()

	s.store.kennels[kennel.ID] = kennel
	c.JSON(http.StatusOK, kennel)
}

// --- tasks ---

func (s *Server) handleListTasks(c *gin.Context) {
	status := c.Query("status")
	taskType := c.Query("type")
	animalID := c.Query("animal_id")

	var dueBefore time.Time
	if raw := c.Query("due_within_minutes"); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes < 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "due_within_minutes must be a non-negative integer",
				"code":  "INVALID_QUERY",
			})
			return
		}
		dueBefore = time.Now().Add(time.Duration(minutes) * time.Minute)
	}

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	tasks := make([]shelterapi.Task, 0)
	for _, task := range sortedByID(s.store.tasks) {
		if status != "" && task.Status != status {
			continue
		}
		if taskType != "" && task.Type != taskType {
			continue
		}
		if animalID != "" && task.AnimalID != animalID {
			continue
		}
		if !dueBefore.IsZero() && (task.DueAt == nil || task.DueAt.After(dueBefore)) {
			continue
		}
		tasks = append(tasks, task)
	}

	c.JSON(http.StatusOK, tasks)
}

func (s *Server) handleGetTask(c *gin.Context) {
	s.store.mu.RLock()
	task, ok := s.store.tasks[c.Param("id")]
	s.store.mu.RUnlock()

	if !ok {
		notFound(c, "task")
		return
	}
	c.JSON(http.StatusOK, task)
}

func (s *Server) handleCreateTask(c *gin.Context) {
	var req shelterapi.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" || req.Type == "" {
		badBody(c)
		return
	}

	now := time.Now().UTC()
	task := shelterapi.Task{
		ID:          idgen.NewTask(),
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Status:      shelterapi.TaskStatusOpen,
		AnimalID:    req.AnimalID,
		AssigneeID:  req.AssigneeID,
		DueAt:       req.DueAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.store.mu.Lock()
	s.store.tasks[task.ID] = task
	s.store.mu.Unlock()

	c.JSON(http.StatusCreated, task)
}

func (s *Server) handleUpdateTask(c *gin.Context) {
	var req struct {
		Status     *string `json:"status"`
		Title      *string `json:"title"`
		AssigneeID *string `json:"assignee_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	task, ok := s.store.tasks[c.Param("id")]
	if !ok {
		notFound(c, "task")
		return
	}

	now := time.Now().UTC()
	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.AssigneeID != nil {
		task.AssigneeID = *req.AssigneeID
	}
	if req.Status != nil {
		task.Status = *req.Status
		if *req.Status == shelterapi.TaskStatusDone {
			task.CompletedAt = &now
			task.CompletedBy = c.GetString(userIDKey)
		}
	}
	task.UpdatedAt = now

	s.store.tasks[task.ID] = task
	c.JSON(http.StatusOK, task)
}

// --- feeding plans ---

func (s *Server) handleListFeedingPlans(c *gin.Context) {
	animalID := c.Query("animal_id")

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	plans := make([]shelterapi.FeedingPlan, 0)
	for _, plan := range sortedByID(s.store.plans) {
		if animalID != "" && plan.AnimalID != animalID {
			continue
		}
		plans = append(plans, plan)
	}

	c.JSON(http.StatusOK, plans)
}

func (s *Server) handleGetFeedingPlan(c *gin.Context) {
	s.store.mu.RLock()
	plan, ok := s.store.plans[c.Param("id")]
	s.store.mu.RUnlock()

	if !ok {
		notFound(c, "feeding plan")
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (s *Server) handleCreateFeedingPlan(c *gin.Context) {
	var req shelterapi.CreateFeedingPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.AnimalID == "" || req.FoodType == "" {
		badBody(c)
		return
	}

	now := time.Now().UTC()
	plan := shelterapi.FeedingPlan{
		ID:           idgen.NewFeedingPlan(),
		AnimalID:     req.AnimalID,
		FoodType:     req.FoodType,
		GramsPerDay:  req.GramsPerDay,
		MealsPerDay:  req.MealsPerDay,
		EnergyFactor: req.EnergyFactor,
		Notes:        req.Notes,
		StartDate:    req.StartDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	s.store.mu.Lock()
	s.store.plans[plan.ID] = plan
	s.store.mu.Unlock()

	c.JSON(http.StatusCreated, plan)
}

func (s *Server) handleUpdateFeedingPlan(c *gin.Context) {
	var req shelterapi.UpdateFeedingPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	plan, ok := s.store.plans[c.Param("id")]
	if !ok {
		notFound(c, "feeding plan")
		return
	}

	if req.FoodType != nil {
		plan.FoodType = *req.FoodType
	}
	if req.GramsPerDay != nil {
		plan.GramsPerDay = *req.GramsPerDay
	}
	if req.MealsPerDay != nil {
		plan.MealsPerDay = *req.MealsPerDay
	}
	if req.EnergyFactor != nil {
		plan.EnergyFactor = *req.EnergyFactor
	}
	if req.Notes != nil {
		plan.Notes = *req.Notes
	}
	plan.UpdatedAt = time.Now().UTC()

	s.store.plans[plan.ID] = plan
	c.JSON(http.StatusOK, plan)
}

// --- hotel reservations ---

func (s *Server) handleListReservations(c *gin.Context) {
	status := c.Query("status")

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	reservations := make([]shelterapi.HotelReservation, 0)
	for _, reservation := range sortedByID(s.store.reservations) {
		if status != "" && reservation.Status != status {
			continue
		}
		reservations = append(reservations, reservation)
	}

	c.JSON(http.StatusOK, reservations)
}

func (s *Server) handleGetReservation(c *gin.Context) {
	s.store.mu.RLock()
	reservation, ok := s.store.reservations[c.Param("id")]
	s.store.mu.RUnlock()

	if !ok {
		notFound(c, "reservation")
		return
	}
	c.JSON(http.StatusOK, reservation)
}

func (s *Server) handleCreateReservation(c *gin.Context) {
	var req shelterapi.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.AnimalName == "" || req.OwnerName == "" {
		badBody(c)
		return
	}

	now := time.Now().UTC()
	reservation := shelterapi.HotelReservation{
		ID:          idgen.NewReservation(),
		AnimalName:  req.AnimalName,
		Species:     req.Species,
		OwnerName:   req.OwnerName,
		OwnerPhone:  req.OwnerPhone,
		KennelID:    req.KennelID,
		CheckIn:     req.CheckIn,
		CheckOut:    req.CheckOut,
		Status:      shelterapi.ReservationStatusBooked,
		PricePerDay: req.PricePerDay,
		Notes:       req.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.store.mu.Lock()
	s.store.reservations[reservation.ID] = reservation
	s.store.mu.Unlock()

	c.JSON(http.StatusCreated, reservation)
}

func (s *Server) handleUpdateReservation(c *gin.Context) {
	var req struct {
		Status *string `json:"status"`
		Notes  *string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	reservation, ok := s.store.reservations[c.Param("id")]
	if !ok {
		notFound(c, "reservation")
		return
	}

	if req.Status != nil {
		reservation.Status = *req.Status
	}
	if req.Notes != nil {
		reservation.Notes = *req.Notes
	}
	reservation.UpdatedAt = time.Now().UTC()

	s.store.reservations[reservation.ID] = reservation
	c.JSON(http.StatusOK, reservation)
}

// --- medical records ---

func (s *Server) handleListMedicalRecords(c *gin.Context) {
	animalID := c.Query("animal_id")

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	records := make([]shelterapi.MedicalRecord, 0)
	for _, record := range sortedByID(s.store.medical) {
		if animalID != "" && record.AnimalID != animalID {
			continue
		}
		records = append(records, record)
	}

	c.JSON(http.StatusOK, records)
}

func (s *Server) handleGetMedicalRecord(c *gin.Context) {
	s.store.mu.RLock()
	record, ok := s.store.medical[c.Param("id")]
	s.store.mu.RUnlock()

	if !ok {
		notFound(c, "medical record")
		return
	}
	c.JSON(http.StatusOK, record)
}

func (s *Server) handleCreateMedicalRecord(c *gin.Context) {
	var req shelterapi.CreateMedicalRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.AnimalID == "" || req.Title == "" {
		badBody(c)
		return
	}

	record := shelterapi.MedicalRecord{
		ID:          idgen.NewMedicalRecord(),
		AnimalID:    req.AnimalID,
		Type:        req.Type,
		Title:       req.Title,
		Notes:       req.Notes,
		VetName:     req.VetName,
		PerformedAt: req.PerformedAt,
		NextDueAt:   req.NextDueAt,
		CreatedAt:   time.Now().UTC(),
	}

	s.store.mu.Lock()
	s.store.medical[record.ID] = record
	s.store.mu.Unlock()

	c.JSON(http.StatusCreated, record)
}
