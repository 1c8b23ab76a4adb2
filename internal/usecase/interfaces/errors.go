package interfaces

import "errors"

// ErrProposalStatusConflict is returned by IProposalRepository.UpdateStatus when the
// stored proposal is no longer pending.
var ErrProposalStatusConflict = errors.New("proposal status conflict")

// ErrUserAlreadyExists is returned by IUserRepository.Create for a taken e-mail.
var ErrUserAlreadyExists = errors.New("user already exists")

// ErrInstallmentTaken is returned by IPremiumPaymentRepository.Reserve when the
// installment already has an approved or in-flight payment.
var ErrInstallmentTaken = errors.New("installment already taken")
