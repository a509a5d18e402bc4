package converter

import (
	"doctor-portal/internal/delivery/dto"
	"doctor-portal/internal/domain/entity"
)

func DoctorToAccountResponse(doctor *entity.Doctor) dto.DoctorAccountResponse {
	return dto.DoctorAccountResponse{
		ID:     doctor.ID,
		Name:   doctor.Name,
		Email:  doctor.Email,
		Phone:  doctor.Phone,
		BMDCNo: doctor.BMDCNo,
	}
}

// DoctorProfileToResponse converts a stored profile; a doctor without one gets
// empty values and the placeholder picture
func DoctorProfileToResponse(profile *entity.DoctorProfile) dto.DoctorProfileResponse {
	if profile == nil {
		return dto.DoctorProfileResponse{ProfileImage: entity.DefaultProfileImage}
	}

	image := profile.ProfileImage
	if image == "" {
		image = entity.DefaultProfileImage
	}

	return dto.DoctorProfileResponse{
		Bio:                profile.Bio,
		Specialty:          profile.Specialty,
		Department:         profile.Department,
		LanguagesSpoken:    profile.LanguagesSpoken,
		ConsultationFee:    profile.ConsultationFee,
		ExperienceYears:    profile.ExperienceYears,
		ProfileImage:       image,
		Gender:             profile.Gender,
		AccountNumber:      profile.AccountNumber,
		Degrees:            profile.Degrees,
		CurrentlyWorking:   profile.CurrentlyWorking,
		PresentAddress:     profile.PresentAddress,
		BMDCCertificate:    profile.BMDCCertificate,
		NIDCard:            profile.NIDCard,
		DegreesCertificate: profile.DegreesCertificate,
	}
}

// BusinessHoursToResponses reports unscoped rows with a null clinic_id
func BusinessHoursToResponses(hours []entity.DoctorBusinessHour) []dto.BusinessHourResponse {
	responses := make([]dto.BusinessHourResponse, len(hours))
	for i, hour := range hours {
		var clinicID *int64
		if hour.ClinicID != entity.UnscopedClinicID {
			id := hour.ClinicID
			clinicID = &id
		}
		responses[i] = dto.BusinessHourResponse{
			ClinicID:    clinicID,
			DayOfWeek:   hour.DayOfWeek,
			StartTime:   hour.StartTime,
			EndTime:     hour.EndTime,
			IsAvailable: hour.IsAvailable,
		}
	}
	return responses
}
