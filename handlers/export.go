package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"progresstracker/services"
)

// reportMetaFromForm collects the optional report metadata: reporting entity,
// billing-cycle label and the signature block. Every field may be blank.
func reportMetaFromForm(e *core.RequestEvent) services.ReportMeta {
	r := e.Request
	meta := services.ReportMeta{
		Entity:   r.FormValue("entity"),
		PBNumber: r.FormValue("pb_number"),
		PreparedBy: services.PreparedBy{
			Signatory: services.Signatory{
				Name:        r.FormValue("prepared_by_name"),
				Designation: r.FormValue("prepared_by_designation"),
				Company:     r.FormValue("prepared_by_company"),
			},
			Date: r.FormValue("prepared_by_date"),
		},
	}

	for i := 1; i <= 3; i++ {
		name := r.FormValue(fmt.Sprintf("approver%d_name", i))
		if name == "" {
			continue
		}
		meta.Approvers = append(meta.Approvers, services.Signatory{
			Name:        name,
			Designation: r.FormValue(fmt.Sprintf("approver%d_designation", i)),
			Company:     r.FormValue(fmt.Sprintf("approver%d_company", i)),
		})
	}

	return meta
}

// HandleExportPDF streams the progress report PDF. The letterhead logo is
// fetched with the request context; a failed fetch logs and renders without
// the image rather than failing the export.
func HandleExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if projectID == "" {
			return e.String(http.StatusBadRequest, "Missing project ID")
		}

		data, err := services.BuildReportData(app, projectID, reportMetaFromForm(e))
		if err != nil {
			log.Printf("export_pdf: %v", err)
			return e.String(http.StatusNotFound, "Project not found")
		}

		logo, err := services.FetchLogo(e.Request.Context(), data.Letterhead.LogoURL)
		if err != nil {
			log.Printf("export_pdf: logo unavailable: %v", err)
			logo = nil
		}

		pdfBytes, err := services.GeneratePDF(data, logo)
		if err != nil {
			log.Printf("export_pdf: generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate PDF file")
		}

		filename := data.FileName + ".pdf"
		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}

// HandleExportExcel streams the progress report workbook.
func HandleExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if projectID == "" {
			return e.String(http.StatusBadRequest, "Missing project ID")
		}

		data, err := services.BuildReportData(app, projectID, reportMetaFromForm(e))
		if err != nil {
			log.Printf("export_excel: %v", err)
			return e.String(http.StatusNotFound, "Project not found")
		}

		xlsxBytes, err := services.GenerateExcel(data)
		if err != nil {
			log.Printf("export_excel: generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := data.FileName + ".xlsx"
		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}
