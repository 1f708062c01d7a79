package routers

import (
	"patient-record-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachPatientRoutes(router chi.Router, patientController *controllers.PatientController) {
	router.Get("/view", patientController.FindAll)
	router.Get("/patient_view/{patient_id}", patientController.FindByID)
	router.Get("/sort", patientController.Sort)
	router.Post("/create", patientController.Create)
	router.Put("/edit/{patient_id}", patientController.Update)
	router.Delete("/delete/{patient_id}", patientController.Delete)
}
